// Package persona holds the static narrator, point-of-view and emotional-tone
// catalogs. Profiles are plain records selected by identifier; behavior
// differences are table lookups, not dispatch.
package persona

import "errors"

// VoiceName identifies one of the provider's prebuilt narration voices.
type VoiceName string

// The fixed voice enumeration offered by the speech provider.
const (
	VoiceFenrir VoiceName = "Fenrir"
	VoiceKore   VoiceName = "Kore"
	VoicePuck   VoiceName = "Puck"
	VoiceCharon VoiceName = "Charon"
	VoiceZephyr VoiceName = "Zephyr"
)

// Gender links a point-of-view profile to a narrator's voice choice.
type Gender string

// Supported gender attributes.
const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Lookup errors.
var (
	ErrUnknownNarrator = errors.New("unknown narrator profile")
	ErrUnknownIdentity = errors.New("unknown identity profile")
	ErrUnknownTone     = errors.New("unknown emotional tone")
)

// NarratorProfile is a named bundle of stylistic instructions and voice
// identifiers applied to generation.
type NarratorProfile struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	MaleVoice       VoiceName `json:"maleVoice"`
	FemaleVoice     VoiceName `json:"femaleVoice"`
	TextStylePrompt string    `json:"-"`
	ImageStyle      string    `json:"-"`
}

// Voice selects the narration voice for the given point-of-view gender.
func (n NarratorProfile) Voice(g Gender) VoiceName {
	if g == GenderFemale {
		return n.FemaleVoice
	}

	return n.MaleVoice
}

// IdentityProfile is a named bundle selecting narrative perspective and the
// gender-linked voice choice.
type IdentityProfile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Gender      Gender `json:"gender"`
	Description string `json:"description"`
	Instruction string `json:"-"`
}

// EmotionalTone is a named bundle of mood instructions and keyword hints
// blended into the text prompt.
type EmotionalTone struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Instruction string   `json:"-"`
	Keywords    []string `json:"keywords"`
}

// Narrators is the fixed narrator catalog, read-only for the lifetime of the
// process.
var Narrators = []NarratorProfile{
	{
		ID:          "the_confidant",
		Name:        "The Confidant",
		Description: "Intimate and hushed, as if told across a pillow. Suits modern romance.",
		MaleVoice:   VoiceZephyr,
		FemaleVoice: VoiceKore,
		TextStylePrompt: "Narrative style: whispered confession, modern romance. " +
			"Keep the voice extremely close and intimate, as though the narrator is " +
			"speaking softly beside the listener. Favor a slow, unhurried rhythm, " +
			"breath-like punctuation (ellipses, dashes) and small domestic detail: " +
			"morning light, the smell of coffee, a half-finished sentence.",
		ImageStyle: "Soft focus photography, cinematic close-up, warm tones, " +
			"golden hour lighting, heavy bokeh, cozy interior, romantic mood.",
	},
	{
		ID:          "the_commander",
		Name:        "The Commander",
		Description: "Forceful and clipped, every line an order. Suits high-tension drama.",
		MaleVoice:   VoiceFenrir,
		FemaleVoice: VoicePuck,
		TextStylePrompt: "Narrative style: commanding, high-tension drama. " +
			"Use short, decisive sentences and strong verbs. The narrator speaks " +
			"from a position of absolute control; tension comes from restraint and " +
			"the weight of what is left unsaid. Avoid ornament; let pacing do the work.",
		ImageStyle: "High contrast noir, dramatic shadows, red and black palette, " +
			"luxurious textures, sharp angles, intense cinematic lighting.",
	},
	{
		ID:          "the_aristocrat",
		Name:        "The Aristocrat",
		Description: "Elegant, formal and slow-burning. Suits court intrigue and historical settings.",
		MaleVoice:   VoiceCharon,
		FemaleVoice: VoiceZephyr,
		TextStylePrompt: "Narrative style: classical, courtly, historical. " +
			"Write in long, ornate periods with formal address and classical " +
			"metaphor (velvet night, burning briar). Emotion stays beneath layers " +
			"of etiquette; what is restrained matters more than what is shown.",
		ImageStyle: "Oil painting style, Rococo and Baroque influence, lavish " +
			"costume, candlelight, rich gold and deep purple, palace interior.",
	},
	{
		ID:          "the_trickster",
		Name:        "The Trickster",
		Description: "Playful, teasing, quick-witted. Suits banter-driven stories.",
		MaleVoice:   VoicePuck,
		FemaleVoice: VoicePuck,
		TextStylePrompt: "Narrative style: playful comedy of manners. " +
			"Lean on banter, double meanings and a narrator who is always half " +
			"smiling. Keep the energy light and quick, with sharp dialogue " +
			"exchanges and a push-and-pull rhythm between the leads.",
		ImageStyle: "Fashion photography style, vibrant neon colors, chic and " +
			"modern, city nightlife backdrop, stylish, playful atmosphere.",
	},
}

// Identities is the fixed point-of-view catalog.
var Identities = []IdentityProfile{
	{
		ID:          "male_pov",
		Name:        "His Perspective",
		Gender:      GenderMale,
		Description: "Told through his senses: visual detail, restraint, unspoken want.",
		Instruction: "Point of view: male first person, or a close third person " +
			"anchored to him. Emphasize what he sees and the pull between impulse " +
			"and restraint. The diction may be blunt and direct.",
	},
	{
		ID:          "female_pov",
		Name:        "Her Perspective",
		Gender:      GenderFemale,
		Description: "Told through her senses: touch, interior feeling, emotional current.",
		Instruction: "Point of view: female first person, or a close third person " +
			"anchored to her. Emphasize fine-grained sensation and the inner " +
			"current of feeling. The diction should be fluid and lyrical.",
	},
	{
		ID:          "two_heroes",
		Name:        "Two Heroes",
		Gender:      GenderMale,
		Description: "Two men circling each other: rivalry, loyalty, and things unsaid.",
		Instruction: "Point of view: two male leads. Emphasize the contest of " +
			"strength and will, camaraderie shading into something deeper, and " +
			"tenderness hidden inside rivalry.",
	},
	{
		ID:          "two_heroines",
		Name:        "Two Heroines",
		Gender:      GenderFemale,
		Description: "Two women in quiet orbit: shared secrets, scent, and resonance.",
		Instruction: "Point of view: two female leads. Emphasize softness, shared " +
			"intimacy of small rituals, and a bond that blurs the line between " +
			"friendship and devotion.",
	},
}

// Tones is the fixed emotional-tone catalog.
var Tones = []EmotionalTone{
	{
		ID:          "sweet",
		Name:        "Sweet",
		Description: "Unconditional warmth and doting affection.",
		Instruction: "Emotional register: sweetness and safety. Slow every " +
			"gesture down; dwell on gentle touches, a kiss to the forehead, " +
			"fingers through hair. Affection is a quiet ritual of reassurance.",
		Keywords: []string{"gentle", "doting", "heartbeat", "warmth", "trust", "melting"},
	},
	{
		ID:          "passion",
		Name:        "Passion",
		Description: "High heat and instinct, the moment restraint slips.",
		Instruction: "Emotional register: urgency and heat. Use high-temperature " +
			"vocabulary (burning, racing, trembling) and a fast, breathless " +
			"rhythm. Show the instant composure gives way to impulse.",
		Keywords: []string{"burning", "longing", "racing", "trembling", "impulse", "consumed"},
	},
	{
		ID:          "angst",
		Name:        "Angst",
		Description: "Love that aches; closeness shadowed by loss.",
		Instruction: "Emotional register: bittersweet ache. Contrast physical " +
			"closeness with inner distance. Use cold-toned vocabulary (chill, " +
			"sting, tears) and the tragic weight of a possible last time.",
		Keywords: []string{"heartbreak", "breathless", "tearstain", "cold", "despair", "entangled"},
	},
	{
		ID:          "forbidden",
		Name:        "Forbidden",
		Description: "The thrill of a line that should not be crossed.",
		Instruction: "Emotional register: tension and transgression. Build " +
			"pressure from the setting (a room next door, a public corner) and " +
			"from conscience. Emphasize hushed voices and the fear of discovery.",
		Keywords: []string{"secret", "suppressed", "tense", "guilt", "thrill", "crossing"},
	},
	{
		ID:          "obsession",
		Name:        "Obsession",
		Description: "Love sharpened into possession; a grip that will not loosen.",
		Instruction: "Emotional register: consuming fixation. Describe an " +
			"inescapable gaze and an embrace that will not release. Use " +
			"vocabulary of binding (locked, branded, chained) as love twists " +
			"into a need to keep.",
		Keywords: []string{"possess", "chains", "madness", "suffocating", "branded", "kept"},
	},
	{
		ID:          "afterglow",
		Name:        "Afterglow",
		Description: "The still, tender quiet after the storm.",
		Instruction: "Emotional register: languid calm. Write the stillness " +
			"after intensity: scattered clothes, tangled sheets, murmured " +
			"half-sentences. Deep relaxation, two people folded into each other.",
		Keywords: []string{"languid", "lingering warmth", "stillness", "nestled", "dim light", "murmur"},
	},
}

// NarratorByID returns the narrator profile for id.
func NarratorByID(id string) (NarratorProfile, error) {
	for _, n := range Narrators {
		if n.ID == id {
			return n, nil
		}
	}

	return NarratorProfile{}, ErrUnknownNarrator
}

// IdentityByID returns the identity profile for id.
func IdentityByID(id string) (IdentityProfile, error) {
	for _, p := range Identities {
		if p.ID == id {
			return p, nil
		}
	}

	return IdentityProfile{}, ErrUnknownIdentity
}

// ToneByID returns the emotional tone for id.
func ToneByID(id string) (EmotionalTone, error) {
	for _, t := range Tones {
		if t.ID == id {
			return t, nil
		}
	}

	return EmotionalTone{}, ErrUnknownTone
}
