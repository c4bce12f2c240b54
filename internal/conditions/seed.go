package conditions

// Seed is the built-in catalog used when no database is configured.
func Seed() []Condition {
	return []Condition{
		{
			Name:            "food poisoning",
			Description:     "Illness caused by eating contaminated food",
			CommonCauses:    []string{"Bacteria", "Viruses", "Parasites", "Toxins"},
			RiskFactors:     []string{"Eating raw/undercooked food", "Poor hygiene", "Contaminated water"},
			Severity:        "Moderate to High",
			Symptoms:        []string{"nausea", "vomiting", "diarrhea", "stomach cramps", "abdominal pain", "fever"},
			Recommendations: "stay hydrated with small sips of water and oral rehydration salts",
		},
		{
			Name:            "diabetes",
			Description:     "Chronic condition affecting blood sugar regulation",
			CommonCauses:    []string{"Insulin resistance", "Autoimmune response", "Genetic factors"},
			RiskFactors:     []string{"Obesity", "Family history", "Sedentary lifestyle"},
			Severity:        "High",
			Symptoms:        []string{"frequent urination", "excessive thirst", "blurred vision", "fatigue", "slow healing sores", "unexplained weight loss"},
			Recommendations: "get your blood sugar tested by a doctor",
		},
		{
			Name:            "high cholesterol",
			Description:     "High levels of cholesterol in the blood",
			CommonCauses:    []string{"Poor diet", "Lack of exercise", "Genetic factors"},
			RiskFactors:     []string{"Obesity", "Smoking", "High blood pressure"},
			Severity:        "Moderate to High",
			Symptoms:        []string{"chest pain", "shortness of breath", "numbness", "dizziness", "yellowish skin deposits"},
			Recommendations: "schedule a lipid panel and review your diet",
		},
		{
			Name:            "flu",
			Description:     "Influenza viral infection",
			CommonCauses:    []string{"Influenza viruses"},
			RiskFactors:     []string{"Weakened immune system", "Age", "Chronic conditions"},
			Severity:        "Moderate",
			Symptoms:        []string{"fever", "cough", "sore throat", "body aches", "headache", "chills", "fatigue", "runny nose"},
			Recommendations: "rest, drink fluids and consider over-the-counter fever reducers",
		},
		{
			Name:            "anxiety",
			Description:     "Mental health condition characterized by excessive worry",
			CommonCauses:    []string{"Genetic factors", "Brain chemistry", "Environmental stress"},
			RiskFactors:     []string{"Trauma", "Stress", "Other mental health conditions"},
			Severity:        "Moderate",
			Symptoms:        []string{"excessive worry", "restlessness", "rapid heartbeat", "trouble sleeping", "irritability", "difficulty concentrating"},
			Recommendations: "try relaxation techniques and talk to a mental health professional",
		},
	}
}
