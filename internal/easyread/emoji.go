package easyread

import "strings"

// emojiKeywords maps topic keywords to the emoji used to tag short titles
// and phrases. Order matters: the first match wins, so multi-topic entries
// get the more specific emoji. Spanish and English keywords both appear
// because the simple strategy runs on untranslated tables too.
var emojiKeywords = []struct {
	keyword string
	emoji   string
}{
	// Content structure
	{"contents", "📚"}, {"contenido", "📚"},
	{"index", "📑"}, {"índice", "📑"},
	{"introduction", "👋"}, {"introducción", "👋"},
	{"bibliography", "📖"}, {"bibliografía", "📖"},
	{"references", "📄"},

	// Self-care topics
	{"self-care", "💆"}, {"autocuidado", "💆"},
	{"physical", "💪"}, {"físico", "💪"},
	{"emotional", "❤️"}, {"emocional", "❤️"},
	{"mental", "🧠"},
	{"cognitive", "🤔"}, {"cognitivo", "🤔"},
	{"social", "👥"},
	{"spiritual", "✨"}, {"espiritual", "✨"},
	{"wellbeing", "😊"}, {"bienestar", "😊"},
	{"health", "🌿"}, {"salud", "🌿"},

	// Activities and practices
	{"exercise", "🏃"}, {"ejercicio", "🏃"},
	{"nutrition", "🥗"}, {"nutrición", "🥗"},
	{"sleep", "😴"}, {"dormir", "😴"}, {"sueño", "😴"},
	{"meditation", "🧘"}, {"meditación", "🧘"},
	{"breathing", "🌬️"}, {"respiración", "🌬️"},
	{"mindfulness", "🎯"},

	// Relationships
	{"relationship", "💕"}, {"relaciones", "💕"},
	{"communication", "💬"}, {"comunicación", "💬"},
	{"support", "🤝"}, {"apoyo", "🤝"},
	{"family", "👨‍👩‍👧‍👦"}, {"familia", "👨‍👩‍👧‍👦"},
	{"friends", "👫"}, {"amigos", "👫"},

	// Emotions
	{"stress", "😰"}, {"estrés", "😰"},
	{"anxiety", "😟"}, {"ansiedad", "😟"},
	{"emotions", "❤️"}, {"emociones", "❤️"},
	{"calm", "😌"}, {"calma", "😌"},

	// Goals and planning
	{"goal", "🎯"}, {"meta", "🎯"},
	{"plan", "📋"},
	{"routine", "🔄"}, {"rutina", "🔄"},
	{"habit", "✅"}, {"hábito", "✅"},

	// Time
	{"daily", "📅"}, {"diario", "📅"},
	{"morning", "🌅"}, {"mañana", "🌅"},
	{"evening", "🌆"}, {"noche", "🌆"},
	{"time", "⏰"}, {"tiempo", "⏰"},
}

// Enhance prefixes a short text with a contextual emoji. Questions,
// numbered items and short headings get generic markers when no keyword
// matches; anything else passes through unchanged.
func Enhance(text string) string {
	lower := strings.ToLower(text)
	for _, e := range emojiKeywords {
		if strings.Contains(lower, e.keyword) {
			return e.emoji + " " + text
		}
	}

	trimmed := strings.TrimSpace(text)
	switch {
	case strings.HasSuffix(trimmed, "?"):
		return "❓ " + text
	case startsWithListNumber(trimmed):
		return "📌 " + text
	case len(strings.Fields(trimmed)) <= 4:
		return "📋 " + text
	}
	return text
}
