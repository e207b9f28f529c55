package onboarding

// State is the coarse position of a session in the onboarding flow.
type State int

const (
	StateUninitialized State = iota
	StateActive
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// StateOf derives the state from the question index.
func StateOf(session *Session, total int) State {
	switch {
	case session == nil || session.CurrentQuestion <= 0:
		return StateUninitialized
	case session.CurrentQuestion < total:
		return StateActive
	default:
		return StateComplete
	}
}

// Action tells the caller what to do after a transition.
type Action int

const (
	// ActionRedirect: reply with ActivationPrompt, nothing recorded.
	ActionRedirect Action = iota
	// ActionWelcome: reply with the welcome text and first question.
	ActionWelcome
	// ActionAskNext: phrase NextQuestion from History and reply with it.
	ActionAskNext
	// ActionComplete: all answers recorded; erase the session and report them.
	ActionComplete
)

func (a Action) String() string {
	switch a {
	case ActionRedirect:
		return "redirect"
	case ActionWelcome:
		return "welcome"
	case ActionAskNext:
		return "next_question"
	case ActionComplete:
		return "completed"
	default:
		return "unknown"
	}
}

// Step describes a single transition.
type Step struct {
	From      State
	To        State
	Action    Action
	FromIndex int

	// Reply is set for ActionRedirect and ActionWelcome.
	Reply string
	// History and NextQuestion are set for ActionAskNext.
	History      string
	NextQuestion string
}

// Transition applies message to session (recording answers and advancing the
// index in place) and returns the resulting step. questions must be non-empty.
func Transition(session *Session, message string, questions []string) Step {
	total := len(questions)
	step := Step{
		From:      StateOf(session, total),
		FromIndex: session.CurrentQuestion,
	}

	if step.From == StateUninitialized {
		if !IsActivation(message) {
			step.To = StateUninitialized
			step.Action = ActionRedirect
			step.Reply = ActivationPrompt
			return step
		}
		step.Reply = WelcomeMessage + " " + questions[0]
		session.Advance()
		step.To = StateActive
		step.Action = ActionWelcome
		return step
	}

	session.RecordAnswer(message)
	if session.CurrentQuestion >= total {
		step.To = StateComplete
		step.Action = ActionComplete
		return step
	}

	step.History = FormatContext(questions, session.Answers)
	step.NextQuestion = questions[session.CurrentQuestion]
	session.Advance()
	step.To = StateActive
	step.Action = ActionAskNext
	return step
}
