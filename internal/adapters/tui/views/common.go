package views

import "sulu/internal/adapters/tui/styles"

// ViewState holds the size and status message shared by all view models
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// RenderMessage styles the current message, or returns "" when there is none
func (s *ViewState) RenderMessage() string {
	switch {
	case s.Message == "":
		return ""
	case s.MessageErr:
		return styles.ErrorMsg.Render(s.Message)
	default:
		return styles.Success.Render(s.Message)
	}
}
