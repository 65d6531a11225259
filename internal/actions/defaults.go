package actions

import "time"

// fallbackInstruction is the prompt of last resort, used only if the registry
// somehow has no "default" entry.
const fallbackInstruction = "You are a professional AI assistant."

// defaultActions is the built-in action set used whenever the configuration
// file is missing or invalid.
func defaultActions() map[string]string {
	return map[string]string{
		"default":               "You are a professional AI assistant specialized in dental practice management. Answer precisely, clearly and with structure.",
		"resume":                "Summarize the following text in 5 concise, clear key points. Focus on the essential information.",
		"explain":               "Explain the following concept as if teaching a beginner in the dental field. Use simple language and practical examples.",
		"translate_fr":          "Translate the following text into French with a formal, professional medical tone.",
		"translate_en":          "Translate the following text into English with a formal, professional medical tone.",
		"short":                 "Give a direct, professional answer in at most 2 concise sentences.",
		"long":                  "Give a detailed, structured and well-organized answer with examples relevant to the dental field.",
		"dental_diagnosis":      "You are an assistant specialized in dental diagnosis. Analyze the information and help with the diagnosis, keeping in mind that your suggestions never replace the expertise of a qualified dentist.",
		"appointment_scheduler": "You are an assistant specialized in managing dental appointments. Help organize and plan consultation slots.",
		"treatment_plan":        "You are an assistant for building dental treatment plans. Help structure the stages of care according to dental protocols.",
	}
}

// defaultDescriptions supplies a description for well-known actions that have
// none in their metadata.
var defaultDescriptions = map[string]string{
	"default":               "General assistant for dental practices",
	"resume":                "Summary in key points",
	"explain":               "Educational explanation",
	"translate_fr":          "Professional French translation",
	"translate_en":          "Professional English translation",
	"short":                 "Concise answer (2 sentences max)",
	"long":                  "Detailed, structured analysis",
	"pdf_analysis":          "Analysis of medical PDF documents",
	"image_analysis":        "Analysis of medical images and radiographs",
	"dental_diagnosis":      "Assistance with dental diagnosis",
	"appointment_scheduler": "Appointment management",
	"treatment_plan":        "Treatment planning",
}

// generateDefaultConfig builds the configuration written to disk when no
// config file exists yet, so operators have a template to extend.
func generateDefaultConfig() configFile {
	return configFile{
		ResponseModes: map[string]configEntry{
			"default": {
				Name:        "Professional Assistant",
				Instruction: defaultActions()["default"],
				Format:      "conversational",
				Description: "Standard response mode for general use",
			},
			"resume": {
				Name:        "Structured Summary",
				Instruction: "Summarize the following text in exactly 5 concise, clear key points. Focus only on the essential information.",
				MaxLength:   "5_bullets",
				Format:      "bullet_points",
				Description: "Concise summary in key points",
			},
			"dental_diagnosis": {
				Name:        "Diagnosis Assistant",
				Instruction: defaultActions()["dental_diagnosis"],
				Format:      "medical_analysis",
				Description: "Assistance with dental diagnosis",
			},
		},
		DefaultSettings: &defaultSettings{
			Language:          "en",
			Tone:              "professional",
			Domain:            "dental_medicine",
			MedicalDisclaimer: "The information provided is for informational purposes only and does not replace the advice of a qualified health professional.",
			CreatedAt:         time.Now().Format(time.RFC3339),
			Version:           "1.0.0",
		},
	}
}
