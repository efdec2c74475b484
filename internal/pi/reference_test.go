package pi

// referenceDigits holds the first 1001 digits of π with the decimal point
// removed, computed independently with Machin's formula.
const referenceDigits = "" +
	"3141592653589793238462643383279502884197169399375105820974944592" +
	"3078164062862089986280348253421170679821480865132823066470938446" +
	"0955058223172535940812848111745028410270193852110555964462294895" +
	"4930381964428810975665933446128475648233786783165271201909145648" +
	"5669234603486104543266482133936072602491412737245870066063155881" +
	"7488152092096282925409171536436789259036001133053054882046652138" +
	"4146951941511609433057270365759591953092186117381932611793105118" +
	"5480744623799627495673518857527248912279381830119491298336733624" +
	"4065664308602139494639522473719070217986094370277053921717629317" +
	"6752384674818467669405132000568127145263560827785771342757789609" +
	"1736371787214684409012249534301465495853710507922796892589235420" +
	"1995611212902196086403441815981362977477130996051870721134999999" +
	"8372978049951059731732816096318595024459455346908302642522308253" +
	"3446850352619311881710100031378387528865875332083814206171776691" +
	"4730359825349042875546873115956286388235378759375195778185778053" +
	"21712268066130019278766111959092164201989"

func referenceDigit(i int) uint8 { return referenceDigits[i] - '0' }
