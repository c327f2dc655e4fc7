package arabic

// ArticulationGroup is a coarse makhraj bucket for an Arabic letter.
type ArticulationGroup string

const (
	GroupThroat       ArticulationGroup = "throat"
	GroupTongueTip    ArticulationGroup = "tongue_tip"
	GroupTongueMiddle ArticulationGroup = "tongue_middle"
	GroupTongueBack   ArticulationGroup = "tongue_back"
	GroupLips         ArticulationGroup = "lips"
	GroupNasal        ArticulationGroup = "nasal"
)

// articulationGroups maps each base letter to its makhraj bucket. The
// grouping is deliberately coarse: it only needs to tell whether two
// confused letters come from clearly different articulation regions.
var articulationGroups = map[rune]ArticulationGroup{
	'ء': GroupThroat, 'أ': GroupThroat, 'إ': GroupThroat, 'آ': GroupThroat,
	'ؤ': GroupThroat, 'ئ': GroupThroat, 'ا': GroupThroat, 'ه': GroupThroat,
	'ع': GroupThroat, 'ح': GroupThroat, 'غ': GroupThroat, 'خ': GroupThroat,

	'ت': GroupTongueTip, 'ث': GroupTongueTip, 'د': GroupTongueTip,
	'ذ': GroupTongueTip, 'ر': GroupTongueTip, 'ز': GroupTongueTip,
	'س': GroupTongueTip, 'ص': GroupTongueTip, 'ط': GroupTongueTip,
	'ظ': GroupTongueTip, 'ل': GroupTongueTip,

	'ج': GroupTongueMiddle, 'ش': GroupTongueMiddle, 'ي': GroupTongueMiddle,
	'ى': GroupTongueMiddle,

	'ق': GroupTongueBack, 'ك': GroupTongueBack, 'ض': GroupTongueBack,

	'ب': GroupLips, 'ف': GroupLips, 'و': GroupLips,

	'ن': GroupNasal, 'م': GroupNasal,
}

// ArticulationGroupOf returns the makhraj bucket for a letter.
func ArticulationGroupOf(r rune) (ArticulationGroup, bool) {
	g, ok := articulationGroups[r]
	return g, ok
}

// heavyLetters are the seven tafkhim (emphatic) letters.
var heavyLetters = map[rune]struct{}{
	'خ': {}, 'ص': {}, 'ض': {}, 'غ': {}, 'ط': {}, 'ق': {}, 'ظ': {},
}

// IsHeavy reports whether r is one of the seven tafkhim letters.
func IsHeavy(r rune) bool {
	_, ok := heavyLetters[r]
	return ok
}

// qalqalahLetters are the five echo letters.
var qalqalahLetters = map[rune]struct{}{
	'ق': {}, 'ط': {}, 'ب': {}, 'ج': {}, 'د': {},
}

// IsQalqalah reports whether r is one of the five qalqalah letters.
func IsQalqalah(r rune) bool {
	_, ok := qalqalahLetters[r]
	return ok
}

// longVowels are the madd letters.
var longVowels = map[rune]struct{}{
	'ا': {}, 'و': {}, 'ي': {}, 'ى': {}, 'آ': {},
}

// IsLongVowel reports whether r is a madd letter.
func IsLongVowel(r rune) bool {
	_, ok := longVowels[r]
	return ok
}

const shadda = '\u0651'

// RequiresElongation reports whether word contains a long-vowel letter
// preceded by another letter, i.e. a position where madd applies. The check
// runs on the coarse key so harakat do not interfere.
func RequiresElongation(word string) bool {
	runes := []rune(Normalize(word, ModeCoarse))
	for i := 1; i < len(runes); i++ {
		if IsLongVowel(runes[i]) {
			return true
		}
	}
	return false
}

// HasGhunnah reports whether word carries a shadda over one of the nasal
// letters (a textual ghunnah cue). The check runs on the strict key since
// it depends on the shadda mark.
func HasGhunnah(word string) bool {
	strict := Normalize(word, ModeStrict)
	prev := rune(0)
	for _, r := range strict {
		if r == shadda && (prev == 'ن' || prev == 'م') {
			return true
		}
		if !IsDiacritic(r) {
			prev = r
		}
	}
	return false
}
