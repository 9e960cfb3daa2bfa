// ABOUTME: Bilingual message catalog for English and Swahili UI strings
// ABOUTME: Unknown keys or languages fall back to English

package i18n

// Lang is a supported UI language code.
type Lang string

const (
	English Lang = "en"
	Swahili Lang = "sw"
)

// Normalize maps an arbitrary language string to a supported Lang.
func Normalize(lang string) Lang {
	if lang == string(Swahili) {
		return Swahili
	}
	return English
}

// Toggle switches between the two supported languages.
func Toggle(lang Lang) Lang {
	if lang == Swahili {
		return English
	}
	return Swahili
}

var messages = map[string]map[Lang]string{
	"chat.greeting": {
		English: "Hello! I'm JamboSec, your AI cybersecurity assistant. How can I help you stay safe online today?",
		Swahili: "Hujambo! Mimi ni JamboSec, msaidizi wako wa AI wa usalama wa mtandao. Naweza kukusaidiaje kukaa salama mtandaoni leo?",
	},
	"chat.error": {
		English: "Sorry, I encountered an error. Please try again.",
		Swahili: "Samahani, nimekutana na tatizo. Tafadhali jaribu tena.",
	},
	"chat.placeholder": {
		English: "Message JamboSec...",
		Swahili: "Tuma ujumbe kwa JamboSec...",
	},
	"chat.new": {
		English: "New chat",
		Swahili: "Mazungumzo mapya",
	},
	"chat.empty": {
		English: "No chat history",
		Swahili: "Hakuna historia ya mazungumzo",
	},
	"chat.start": {
		English: "Start a new conversation",
		Swahili: "Anza mazungumzo mapya",
	},
	"nav.chat": {
		English: "Chat",
		Swahili: "Soga",
	},
	"nav.knowledge": {
		English: "Knowledge",
		Swahili: "Maarifa",
	},
	"knowledge.recent": {
		English: "Recently viewed",
		Swahili: "Zilizotazamwa hivi karibuni",
	},
	"knowledge.search": {
		English: "Search the knowledge base...",
		Swahili: "Tafuta kwenye hifadhidata ya maarifa...",
	},
	"account.title": {
		English: "Account",
		Swahili: "Akaunti",
	},
	"auth.login": {
		English: "Sign in",
		Swahili: "Ingia",
	},
	"auth.signup": {
		English: "Create account",
		Swahili: "Fungua akaunti",
	},
}

// T looks up a message by key in the given language, falling back to English,
// then to the key itself when the key is unknown.
func T(key string, lang Lang) string {
	entry, ok := messages[key]
	if !ok {
		return key
	}
	if msg, ok := entry[lang]; ok {
		return msg
	}
	return entry[English]
}
