package randomizer

// Look-alike candidates per ASCII letter. Lower and upper case have their own
// sets so a replacement always keeps the case of the letter it replaces.
var lowerHomoglyphs = map[rune][]rune{
	'a': {'а', 'ɑ', 'α'},
	'b': {'ь', 'ƅ', 'ḃ'},
	'c': {'с', 'ϲ', 'ć'},
	'd': {'ԁ', 'ɗ', 'ḍ'},
	'e': {'е', 'ė', 'ẹ'},
	'f': {'ƒ', 'ḟ'},
	'g': {'ɡ', 'ġ', 'ǵ'},
	'h': {'һ', 'ḣ', 'ḥ'},
	'i': {'і', 'ı', 'ḭ'},
	'j': {'ј', 'ĵ', 'ǰ'},
	'k': {'κ', 'ḳ', 'ķ'},
	'l': {'ḷ', 'ļ', 'ĺ'},
	'm': {'м', 'ṁ', 'ḿ'},
	'n': {'ո', 'ṅ', 'ń'},
	'o': {'о', 'ο', 'ȯ'},
	'p': {'р', 'ρ', 'ṗ'},
	'q': {'ԛ', 'ɋ'},
	'r': {'г', 'ṙ', 'ŕ'},
	's': {'ѕ', 'ṡ', 'ś'},
	't': {'τ', 'ṫ', 'ť'},
	'u': {'υ', 'ս', 'ů'},
	'v': {'ν', 'ѵ', 'ṿ'},
	'w': {'ԝ', 'ẇ', 'ẃ'},
	'x': {'х', 'ẋ', 'ẍ'},
	'y': {'у', 'ү', 'ẏ'},
	'z': {'ᴢ', 'ż', 'ź'},
}

var upperHomoglyphs = map[rune][]rune{
	'A': {'А', 'Α', 'Ȧ'},
	'B': {'В', 'Β', 'Ḃ'},
	'C': {'С', 'Ϲ', 'Ć'},
	'D': {'Ḍ', 'Ď', 'Ḋ'},
	'E': {'Е', 'Ε', 'Ė'},
	'F': {'Ḟ', 'Ƒ'},
	'G': {'Ġ', 'Ǵ', 'Ģ'},
	'H': {'Н', 'Η', 'Ḣ'},
	'I': {'І', 'Ι', 'Ḭ'},
	'J': {'Ј', 'Ĵ'},
	'K': {'К', 'Κ', 'Ḳ'},
	'L': {'Ḷ', 'Ļ', 'Ĺ'},
	'M': {'М', 'Μ', 'Ṁ'},
	'N': {'Ν', 'Ṅ', 'Ń'},
	'O': {'О', 'Ο', 'Ȯ'},
	'P': {'Р', 'Ρ', 'Ṗ'},
	'Q': {'Ԛ', 'Ɋ'},
	'R': {'Ṙ', 'Ŕ', 'Ŗ'},
	'S': {'Ѕ', 'Ṡ', 'Ś'},
	'T': {'Т', 'Τ', 'Ṫ'},
	'U': {'Ս', 'Ů', 'Ų'},
	'V': {'Ѵ', 'Ṿ'},
	'W': {'Ԝ', 'Ẇ', 'Ẃ'},
	'X': {'Х', 'Χ', 'Ẋ'},
	'Y': {'Ү', 'Υ', 'Ẏ'},
	'Z': {'Ζ', 'Ż', 'Ź'},
}

func homoglyphsFor(ch rune) []rune {
	if ch >= 'A' && ch <= 'Z' {
		return upperHomoglyphs[ch]
	}
	return lowerHomoglyphs[ch]
}
