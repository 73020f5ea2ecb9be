package config

// PromptCatalog is the static content shown around the chat widget.
type PromptCatalog struct {
	General []string      `yaml:"general,omitempty" json:"general"`
	Parties []PartyPrompt `yaml:"parties,omitempty" json:"parties"`
	FAQ     []FAQItem     `yaml:"faq,omitempty" json:"faq"`
}

type PartyPrompt struct {
	Name   string `yaml:"name" json:"name"`
	Prompt string `yaml:"prompt" json:"prompt"`
}

type FAQItem struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}

// DefaultPrompts returns the built-in canned prompts and FAQ.
func DefaultPrompts() PromptCatalog {
	return PromptCatalog{
		General: []string{
			"How does the General Election affect me?",
			"When is the next General Election?",
			"How do I register to vote?",
			"What are the key election issues?",
		},
		Parties: []PartyPrompt{
			{Name: "Fianna Fáil", Prompt: "What are Fianna Fáil's (FF) main policies?"},
			{Name: "Fine Gael", Prompt: "What are Fine Gael's (FG) main policies?"},
			{Name: "Sinn Féin", Prompt: "What are Sinn Féin's (SF) main policies?"},
			{Name: "Green Party", Prompt: "What are the Green Party's (GP) main policies?"},
		},
		FAQ: []FAQItem{
			{
				Question: "When is the next General Election in Ireland?",
				Answer:   "The next Irish General Election must be held no later than February 2025, but the exact date is yet to be announced.",
			},
			{
				Question: "How does the Irish voting system work?",
				Answer:   "Ireland uses a proportional representation system with a single transferable vote (PR-STV) for general elections. Voters rank candidates in order of preference on their ballot papers.",
			},
			{
				Question: "Who can vote in Irish General Elections?",
				Answer:   "Irish citizens aged 18 or over who are ordinarily resident in Ireland and registered to vote are eligible to participate in General Elections.",
			},
			{
				Question: "How do I register to vote?",
				Answer:   "You can register to vote by completing a voter registration form and returning it to your local authority. Forms are available from local authorities, post offices, and online at checktheregister.ie.",
			},
		},
	}
}

// applyDefaults fills each empty section independently.
func (p *PromptCatalog) applyDefaults() {
	defaults := DefaultPrompts()
	if len(p.General) == 0 {
		p.General = defaults.General
	}
	if len(p.Parties) == 0 {
		p.Parties = defaults.Parties
	}
	if len(p.FAQ) == 0 {
		p.FAQ = defaults.FAQ
	}
}

// All returns every canned prompt in display order: general prompts, then parties.
func (p PromptCatalog) All() []string {
	all := make([]string, 0, len(p.General)+len(p.Parties))
	all = append(all, p.General...)
	for _, party := range p.Parties {
		all = append(all, party.Prompt)
	}
	return all
}
