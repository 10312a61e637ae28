package models

type BuiltinSymptom struct {
	Key   string
	Icon  string
	Color string
}

// DefaultBuiltinSymptoms is the fixed catalog a daily log may reference.
func DefaultBuiltinSymptoms() []BuiltinSymptom {
	return []BuiltinSymptom{
		{Key: "cramps", Icon: "🩸", Color: "#FF4444"},
		{Key: "headache", Icon: "🤕", Color: "#FFA500"},
		{Key: "acne", Icon: "🔴", Color: "#E74C3C"},
		{Key: "breast_tenderness", Icon: "💔", Color: "#E91E63"},
		{Key: "nausea", Icon: "🤢", Color: "#7CB342"},
		{Key: "bloating", Icon: "🎈", Color: "#3498DB"},
		{Key: "fatigue", Icon: "😴", Color: "#95A5A6"},
		{Key: "cravings", Icon: "🍫", Color: "#A1887F"},
		{Key: "insomnia", Icon: "🌙", Color: "#5C6BC0"},
		{Key: "back_pain", Icon: "🦴", Color: "#8E6E53"},
	}
}

func IsBuiltinSymptom(key string) bool {
	for _, symptom := range DefaultBuiltinSymptoms() {
		if symptom.Key == key {
			return true
		}
	}
	return false
}
