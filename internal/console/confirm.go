package console

import "github.com/AlecAivazis/survey/v2"

// Confirmer asks the operator a yes/no question. Injected so tests can
// supply deterministic answers.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// SurveyConfirmer prompts on the terminal. Defaults to "no".
type SurveyConfirmer struct{}

// Confirm blocks on terminal input until the operator answers.
func (SurveyConfirmer) Confirm(question string) (bool, error) {
	answer := false
	prompt := &survey.Confirm{
		Message: question,
		Default: false,
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return false, err
	}
	return answer, nil
}
