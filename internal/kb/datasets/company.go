package datasets

import "github.com/variphi/kbseed/internal/kb"

// Company is the Variphi company information set.
func Company() kb.Dataset {
	return kb.Dataset{
		Name:       "company",
		Collection: "variphi",
		ProbeText:  "Who founded Variphi?",
		Documents: []kb.Document{
			// Company overview
			{
				ID:       "doc_company_overview",
				Text:     "Variphi is an AI company founded in 2024. The company specializes in artificial intelligence solutions and services. Variphi focuses on developing innovative AI technologies and providing AI-powered solutions to businesses.",
				Metadata: map[string]string{"category": "company", "topic": "overview", "type": "general"},
			},
			{
				ID:       "doc_founder",
				Text:     "Variphi was founded by Nitish Mishra in 2024. Nitish Mishra is the founder and leader of the company, driving its vision and strategic direction in the AI industry.",
				Metadata: map[string]string{"category": "company", "topic": "founder", "person": "Nitish Mishra"},
			},
			{
				ID:       "doc_founding_year",
				Text:     "Variphi was established in the year 2024. As a relatively new company, Variphi is focused on building cutting-edge AI solutions and establishing itself as a leader in the artificial intelligence space.",
				Metadata: map[string]string{"category": "company", "topic": "history", "year": "2024"},
			},

			// Mission and vision
			{
				ID:       "doc_mission",
				Text:     "Variphi's mission is to leverage artificial intelligence to solve complex business problems and create innovative solutions. The company aims to make AI accessible and practical for businesses of all sizes, helping them transform their operations through intelligent automation and data-driven insights.",
				Metadata: map[string]string{"category": "company", "topic": "mission", "type": "values"},
			},
			{
				ID:       "doc_vision",
				Text:     "Variphi envisions a future where AI seamlessly integrates into business operations, enabling smarter decision-making, improved efficiency, and enhanced customer experiences. The company strives to be at the forefront of AI innovation and technology.",
				Metadata: map[string]string{"category": "company", "topic": "vision", "type": "values"},
			},

			// Technology and solutions
			{
				ID:       "doc_ai_technology",
				Text:     "Variphi develops and implements advanced AI technologies including machine learning, deep learning, natural language processing, and computer vision. The company builds custom AI solutions tailored to specific business needs, from predictive analytics to intelligent automation systems.",
				Metadata: map[string]string{"category": "technology", "topic": "ai", "type": "solutions"},
			},
			{
				ID:       "doc_services",
				Text:     "Variphi offers comprehensive AI services including AI consulting, custom AI development, AI integration services, and AI-powered analytics. The company helps businesses identify AI opportunities, develop AI strategies, and implement AI solutions that drive real business value.",
				Metadata: map[string]string{"category": "business", "topic": "services", "type": "offerings"},
			},

			// Industry focus
			{
				ID:       "doc_industries",
				Text:     "Variphi serves various industries including security and surveillance, enterprise software, data analytics, and automation. The company's AI solutions are particularly strong in video analytics, event detection, and intelligent monitoring systems for security applications.",
				Metadata: map[string]string{"category": "business", "topic": "industries", "type": "markets"},
			},
			{
				ID:       "doc_security_solutions",
				Text:     "Variphi specializes in AI-powered security and surveillance solutions. The company develops intelligent video analytics systems that can detect events, analyze behavior, and provide real-time alerts. These solutions help organizations enhance their security operations through advanced AI technology.",
				Metadata: map[string]string{"category": "technology", "topic": "security", "application": "surveillance"},
			},

			// Culture and values
			{
				ID:       "doc_innovation",
				Text:     "Innovation is at the core of Variphi's culture. The company encourages creative thinking, continuous learning, and experimentation with new AI technologies. Variphi believes in pushing the boundaries of what's possible with artificial intelligence.",
				Metadata: map[string]string{"category": "company", "topic": "culture", "value": "innovation"},
			},
			{
				ID:       "doc_quality",
				Text:     "Variphi is committed to delivering high-quality AI solutions that meet the highest standards of performance, reliability, and accuracy. The company emphasizes thorough testing, continuous improvement, and customer satisfaction in all its projects.",
				Metadata: map[string]string{"category": "company", "topic": "culture", "value": "quality"},
			},

			// Contact
			{
				ID:       "doc_contact",
				Text:     "For inquiries about Variphi's services, partnerships, or general information, you can reach out through the company's official channels. Variphi maintains professional communication standards and is responsive to business inquiries and collaboration opportunities.",
				Metadata: map[string]string{"category": "company", "topic": "contact", "type": "information"},
			},
		},
	}
}
