package catalog

// defaultClearChatID is the fallback guide used for unrecognized agent ids.
const defaultClearChatID = "chatgpt"

// Default returns the built-in study catalog.
func Default() *Catalog {
	return &Catalog{
		Agents: []Agent{
			{ID: "chatgpt", Name: "ChatGPT", URL: "https://chat.openai.com"},
			{ID: "claude", Name: "Claude", URL: "https://claude.ai"},
			{ID: "gemini", Name: "Gemini", URL: "https://gemini.google.com"},
			{ID: "copilot", Name: "Microsoft Copilot", URL: "https://copilot.microsoft.com"},
		},

		InformationalTasks: []TaskDef{
			{
				ID:          "info_1",
				Title:       "Summarize a Document",
				Description: "Use the AI Agent to summarize a technical document or report relevant to your work or interests.",
				Instructions: "Provide the AI Agent with a document (paste text or describe it) and ask it to create a concise summary. " +
					"After receiving the initial summary, ask 2-3 relevant follow-up questions based on the output to explore specific aspects in more detail. " +
					"**Important:** Do not copy and paste prompts from these instructions - generate your own prompts in your own words.",
			},
			{
				ID:          "info_2",
				Title:       "Answer a Domain-Specific Question",
				Description: "Ask the AI Agent a question related to the domain you work in.",
				Instructions: "Ask the AI Agent a question related to the domain you work in. " +
					"After receiving the initial response, ask 2-3 relevant follow-up questions based on the output to explore the topic further.",
			},
			{
				ID:          "info_3",
				Title:       "Translate Technical Information",
				Description: "Ask the AI Agent to translate technical or complex information into plain language.",
				Instructions: "Provide technical content (e.g., a technical specification, research finding, or jargon-heavy text) and ask the AI Agent to explain it in simple, accessible terms. " +
					"After receiving the initial explanation, ask 2-3 relevant follow-up questions to clarify specific points or explore related concepts. " +
					"**Important:** Do not copy and paste prompts from these instructions - generate your own prompts in your own words.",
			},
		},

		GenerativeTasks: []TaskDef{
			{
				ID:          "gen_1",
				Title:       "Draft an Email or Communication",
				Description: "Use the AI Agent to draft a professional email or communication.",
				Instructions: "Describe the purpose and context of the email (e.g., requesting information, following up on a meeting) and ask the AI Agent to draft it for you. " +
					"After receiving the initial draft, ask 2-3 relevant follow-up questions to refine the tone, add specific details, or adjust the content. " +
					"**Important:** Do not copy and paste prompts from these instructions - generate your own prompts in your own words.",
			},
			{
				ID:          "gen_2",
				Title:       "Create a Meeting Agenda",
				Description: "Ask the AI Agent to create a meeting agenda or action list.",
				Instructions: "Provide the AI Agent with the meeting topic and objectives, and ask it to generate a structured agenda with time allocations and discussion points. " +
					"After receiving the initial agenda, ask 2-3 relevant follow-up questions to refine specific sections, adjust timing, or add additional items. " +
					"**Important:** Do not copy and paste prompts from these instructions - generate your own prompts in your own words.",
			},
			{
				ID:          "gen_3",
				Title:       "Draft a Knowledge-Base Article",
				Description: "Use the AI Agent to draft an article or guide for a knowledge base.",
				Instructions: "Describe the topic and target audience for the article, and ask the AI Agent to create a structured draft with sections and key information. " +
					"After receiving the initial draft, ask 2-3 relevant follow-up questions to expand specific sections, add examples, or adjust the level of detail. " +
					"**Important:** Do not copy and paste prompts from these instructions - generate your own prompts in your own words.",
			},
			{
				ID:          "gen_4",
				Title:       "Recommend Tools or Resources",
				Description: "Ask the AI Agent to recommend tools or resources for a specific project or task.",
				Instructions: "Describe your project needs or goals, and ask the AI Agent to suggest appropriate tools, software, or resources with brief explanations. " +
					"After receiving the initial recommendations, ask 2-3 relevant follow-up questions to compare specific options, understand implementation details, or explore alternatives. " +
					"**Important:** Do not copy and paste prompts from these instructions - generate your own prompts in your own words.",
			},
		},

		Functional: []ScaleItem{
			{ID: "func_1", NegPole: "Unreliable", PosPole: "Reliable"},
			{ID: "func_2", NegPole: "Inaccurate", PosPole: "Accurate"},
			{ID: "func_3", NegPole: "Inconsistent", PosPole: "Consistent"},
			{ID: "func_4", NegPole: "Unpredictable", PosPole: "Predictable"},
			{ID: "func_5", NegPole: "Inefficient", PosPole: "Efficient"},
			{ID: "func_6", NegPole: "Error-prone", PosPole: "Error-resistant"},
			{ID: "func_7", NegPole: "Imprecise", PosPole: "Precise"},
			{ID: "func_8", NegPole: "Fragile", PosPole: "Robust"},
			{ID: "func_9", NegPole: "Slow", PosPole: "Timely"},
			{ID: "func_10", NegPole: "Unsafe", PosPole: "Safe"},
		},

		Social: []ScaleItem{
			{ID: "soc_1", NegPole: "Opaque", PosPole: "Transparent"},
			{ID: "soc_2", NegPole: "Unfair", PosPole: "Fair"},
			{ID: "soc_3", NegPole: "Disrespectful", PosPole: "Respectful"},
			{ID: "soc_4", NegPole: "Privacy-invasive", PosPole: "Privacy-protective"},
			{ID: "soc_5", NegPole: "Unaccountable", PosPole: "Accountable"},
			{ID: "soc_6", NegPole: "Non-compliant", PosPole: "Compliant"},
			{ID: "soc_7", NegPole: "Manipulative", PosPole: "Non-manipulative"},
			{ID: "soc_8", NegPole: "Uncontrollable", PosPole: "Controllable"},
			{ID: "soc_9", NegPole: "Dishonest", PosPole: "Honest"},
			{ID: "soc_10", NegPole: "Unclear", PosPole: "Clear"},
		},

		STIAS: []LikertItem{
			{ID: "stias_1", Text: "I am confident in the AI Agent."},
			{ID: "stias_2", Text: "I can rely on the AI Agent."},
			{ID: "stias_3", Text: "I can trust the AI Agent."},
		},

		SingleItems: []SingleItem{
			{ID: "usefulness", Text: "How useful was the AI Agent for completing this task?"},
			{ID: "satisfaction", Text: "How satisfied are you with the AI Agent's performance on this task?"},
		},

		SemanticDifferentialPoints: []int{1, 2, 3, 4, 5, 6, 7},

		LikertScale: []ScalePoint{
			{Value: 1, Label: "Strongly Disagree"},
			{Value: 2, Label: "Disagree"},
			{Value: 3, Label: "Somewhat Disagree"},
			{Value: 4, Label: "Neither Agree nor Disagree"},
			{Value: 5, Label: "Somewhat Agree"},
			{Value: 6, Label: "Agree"},
			{Value: 7, Label: "Strongly Agree"},
		},

		UsefulnessScale: []ScalePoint{
			{Value: 1, Label: "Not at all useful"},
			{Value: 2, Label: "Slightly useful"},
			{Value: 3, Label: "Somewhat useful"},
			{Value: 4, Label: "Moderately useful"},
			{Value: 5, Label: "Useful"},
			{Value: 6, Label: "Very useful"},
			{Value: 7, Label: "Extremely useful"},
		},

		SatisfactionScale: []ScalePoint{
			{Value: 1, Label: "Very dissatisfied"},
			{Value: 2, Label: "Dissatisfied"},
			{Value: 3, Label: "Somewhat dissatisfied"},
			{Value: 4, Label: "Neither satisfied nor dissatisfied"},
			{Value: 5, Label: "Somewhat satisfied"},
			{Value: 6, Label: "Satisfied"},
			{Value: 7, Label: "Very satisfied"},
		},

		Demographics: []Question{
			{Key: "role", Question: "What is your current role or occupation?", Type: "text"},
			{Key: "age", Question: "What is your age range?", Type: "select",
				Options: []string{"18-24", "25-34", "35-44", "45-54", "55-64", "65+", "Prefer not to say"}},
			{Key: "gender", Question: "What is your gender?", Type: "select",
				Options: []string{"Male", "Female", "Non-binary", "Other", "Prefer not to say"}},
			{Key: "education", Question: "What is your highest level of education?", Type: "select",
				Options: []string{
					"High school or equivalent",
					"Some college",
					"Bachelor's degree",
					"Master's degree",
					"Doctoral degree",
					"Other",
					"Prefer not to say",
				}},
		},

		AIExperience: []Question{
			{Key: "aiFrequency", Question: "How often do you use AI tools or agents?", Type: "select",
				Options: []string{"Daily", "Several times a week", "Weekly", "Monthly", "Rarely", "Never"}},
			{Key: "aiLiteracy", Question: "How would you rate your understanding of AI technology?", Type: "select",
				Options: []string{"Expert", "Advanced", "Intermediate", "Beginner", "No knowledge"}},
		},

		AgentFamiliarity: []Question{
			{Key: "priorUse", Question: "Have you used [AGENT_NAME] before this study?", Type: "select",
				Options: []string{"Yes, frequently", "Yes, occasionally", "Yes, rarely", "No, this is my first time"}},
			{Key: "familiarity", Question: "How familiar are you with [AGENT_NAME]?", Type: "select",
				Options: []string{"Very familiar", "Somewhat familiar", "Slightly familiar", "Not at all familiar"}},
		},

		ClearChat: map[string]ClearChatGuide{
			"chatgpt": {
				Location: "Top-left corner of the screen",
				Button:   `"New chat" button (or "+ New chat")`,
				Details:  "Look for the button in the sidebar on the left side of your screen.",
			},
			"claude": {
				Location: "Top-left corner or center of the screen",
				Button:   `"New chat" button or the "+" icon`,
				Details:  "The button is typically located in the top navigation bar or sidebar.",
			},
			"gemini": {
				Location: "Top-left or top-center of the screen",
				Button:   `"New chat" button`,
				Details:  `Look for the button near the top of the interface, often with a "+" icon.`,
			},
			"copilot": {
				Location: "Top-right corner of the screen",
				Button:   `"New topic" button or the broom/sweep icon`,
				Details:  "Alternatively, you can refresh the page (F5 or Cmd+R) to start fresh.",
			},
		},
	}
}
