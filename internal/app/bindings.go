package app

import (
	"github.com/ziadkadry99/diana/internal/notify"
	"github.com/ziadkadry99/diana/internal/pages"
	"github.com/ziadkadry99/diana/internal/render"
	"github.com/ziadkadry99/diana/internal/state"
	"github.com/ziadkadry99/diana/internal/view"
)

// bindShell attaches the handlers of controls that live outside the main
// region. They survive every page render.
func (s *Session) bindShell() {
	doc := s.Doc
	doc.On(pages.LoginBtn, view.Click, func(view.Payload) {
		if s.Store.User() != nil {
			s.Store.NavigateTo(state.PageProfile)
		} else {
			s.Store.NavigateTo(state.PageLogin)
		}
	})
	doc.On(pages.SignupLink, view.Click, func(view.Payload) { s.Store.NavigateTo(state.PageSignup) })
	doc.On(pages.LogoutLink, view.Click, func(view.Payload) { s.Forms.ConfirmLogout(doc) })
	for id, page := range pages.NavTargets {
		doc.On(id, view.Click, func(view.Payload) { s.Store.NavigateTo(page) })
	}

	s.Toasts.OnChange(func(notify.Toast) {
		doc.SetContent(pages.RegionToasts, pages.Toasts(s.Toasts.Active())...)
	})
}

func (s *Session) bindSettings(doc *render.Document, _ *render.Scope) {
	doc.On(pages.ThemeToggle, view.Click, func(view.Payload) { s.Store.ToggleTheme() })
}

func (s *Session) bindHelp(doc *render.Document, _ *render.Scope) {
	doc.On(pages.ContactBtn, view.Click, func(view.Payload) {
		s.Toasts.Enqueue("📧 Contact "+pages.SupportAddress, notify.KindInfo)
	})
}
