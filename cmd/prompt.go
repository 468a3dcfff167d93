package cmd

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/canopus/chalcreator/internal/chalcreator/challenge"
)

// askMissing fills the empty name, author and type of o interactively.
// It is a variable so tests can replace the terminal prompt.
var askMissing = promptMissing

func promptMissing(o *createOptions) error {
	var prompts []*survey.Question

	if strings.TrimSpace(o.name) == "" {
		prompts = append(prompts, &survey.Question{
			Name:     "name",
			Prompt:   &survey.Input{Message: "Challenge name:"},
			Validate: survey.Required,
		})
	}
	if strings.TrimSpace(o.author) == "" {
		prompts = append(prompts, &survey.Question{
			Name:     "author",
			Prompt:   &survey.Input{Message: "Author:"},
			Validate: survey.Required,
		})
	}
	if _, ok := challenge.ParseCategory(o.category); !ok {
		prompts = append(prompts, &survey.Question{
			Name: "category",
			Prompt: &survey.Select{
				Message: "Select challenge type:",
				Options: challenge.CategoryNames(),
			},
		})
	}
	if len(prompts) == 0 {
		return nil
	}

	answers := struct {
		Name     string `survey:"name"`
		Author   string `survey:"author"`
		Category string `survey:"category"`
	}{}
	if err := survey.Ask(prompts, &answers); err != nil {
		return fmt.Errorf("prompt canceled: %w", err)
	}

	if answers.Name != "" {
		o.name = answers.Name
	}
	if answers.Author != "" {
		o.author = answers.Author
	}
	if answers.Category != "" {
		o.category = answers.Category
	}
	return nil
}
