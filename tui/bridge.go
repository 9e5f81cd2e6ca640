package tui

// requestKind distinguishes the engine's three UI operations.
type requestKind int

const (
	reqDisplay requestKind = iota
	reqMenu
	reqPrompt
	reqDone
)

// uiRequest is one engine-to-frontend call crossing the bridge.
type uiRequest struct {
	kind    requestKind
	text    string
	options []string
}

// Bridge adapts the engine's blocking UI calls to the Bubble Tea event
// loop. The engine runs in its own goroutine and parks on the reply
// channel whenever it needs input; the model answers from Update.
type Bridge struct {
	requests chan uiRequest
	replies  chan string
}

// NewBridge creates an unbuffered bridge. Both sides rendezvous on every
// call, so the engine can never run ahead of the screen.
func NewBridge() *Bridge {
	return &Bridge{
		requests: make(chan uiRequest),
		replies:  make(chan string),
	}
}

// Display sends narration to the frontend without waiting for input.
func (b *Bridge) Display(text string) {
	b.requests <- uiRequest{kind: reqDisplay, text: text}
}

// Menu blocks until the player picks one of the options.
func (b *Bridge) Menu(prompt string, options []string) string {
	b.requests <- uiRequest{kind: reqMenu, text: prompt, options: options}
	return <-b.replies
}

// Prompt blocks until the player submits a line.
func (b *Bridge) Prompt(prompt string) string {
	b.requests <- uiRequest{kind: reqPrompt, text: prompt}
	return <-b.replies
}

// Finish tells the frontend the engine loop has returned.
func (b *Bridge) Finish() {
	b.requests <- uiRequest{kind: reqDone}
}
