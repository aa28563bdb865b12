package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerTabBindings(r)
	registerFormBindings(r)
	registerHistoryBindings(r)
	registerSearchBindings(r)
	registerResponseBindings(r)

	return r
}

func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
	r.Register(ContextGlobal, "ctrl+right", ActionNextTab)
	r.Register(ContextGlobal, "ctrl+left", ActionPrevTab)
	r.Register(ContextGlobal, "ctrl+p", ActionPing)
}

// Single letters are only bound outside text fields so they can be typed
func registerTabBindings(r *Registry) {
	r.RegisterMultiple(ContextTabs, []string{"q"}, ActionQuit)
	r.RegisterMultiple(ContextTabs, []string{"tab", "right", "l"}, ActionNextTab)
	r.RegisterMultiple(ContextTabs, []string{"shift+tab", "left", "h"}, ActionPrevTab)
	r.Register(ContextTabs, "1", ActionTabRequest)
	r.Register(ContextTabs, "2", ActionTabHistory)
	r.Register(ContextTabs, "3", ActionTabConfig)
	r.RegisterMultiple(ContextTabs, []string{"enter", "i"}, ActionFocusForm)
	r.Register(ContextTabs, "?", ActionHelp)
	r.Register(ContextTabs, "s", ActionSubmit)
	r.Register(ContextTabs, "S", ActionSaveConfig)
	r.Register(ContextTabs, "L", ActionRestore)
	r.Register(ContextTabs, "d", ActionPrefill)
	r.Register(ContextTabs, "p", ActionPing)
	r.Register(ContextTabs, "c", ActionCopyResponse)
	r.RegisterMultiple(ContextTabs, []string{"up", "k"}, ActionScrollUp)
	r.RegisterMultiple(ContextTabs, []string{"down", "j"}, ActionScrollDown)
	r.Register(ContextTabs, "pgup", ActionPageUp)
	r.Register(ContextTabs, "pgdown", ActionPageDown)
	r.Register(ContextTabs, "home", ActionGoToTop)
	r.Register(ContextTabs, "end", ActionGoToBottom)
}

func registerFormBindings(r *Registry) {
	r.Register(ContextForm, "esc", ActionBlurForm)
	r.RegisterMultiple(ContextForm, []string{"tab", "down"}, ActionNextField)
	r.RegisterMultiple(ContextForm, []string{"shift+tab", "up"}, ActionPrevField)
	r.Register(ContextForm, "enter", ActionSubmit)
	r.Register(ContextForm, "ctrl+s", ActionSaveConfig)
}

func registerHistoryBindings(r *Registry) {
	r.Register(ContextHistory, "q", ActionQuit)
	r.RegisterMultiple(ContextHistory, []string{"tab", "right", "l"}, ActionNextTab)
	r.RegisterMultiple(ContextHistory, []string{"shift+tab", "left", "h"}, ActionPrevTab)
	r.Register(ContextHistory, "1", ActionTabRequest)
	r.Register(ContextHistory, "2", ActionTabHistory)
	r.Register(ContextHistory, "3", ActionTabConfig)
	r.RegisterMultiple(ContextHistory, []string{"r", "f5"}, ActionRefreshHistory)
	r.Register(ContextHistory, "/", ActionOpenSearch)
	r.Register(ContextHistory, "esc", ActionClearSearch)
	r.Register(ContextHistory, "p", ActionPing)
	r.Register(ContextHistory, "?", ActionHelp)
	r.RegisterMultiple(ContextHistory, []string{"up", "k"}, ActionScrollUp)
	r.RegisterMultiple(ContextHistory, []string{"down", "j"}, ActionScrollDown)
	r.Register(ContextHistory, "pgup", ActionPageUp)
	r.Register(ContextHistory, "pgdown", ActionPageDown)
	r.RegisterMultiple(ContextHistory, []string{"home", "g"}, ActionGoToTop)
	r.RegisterMultiple(ContextHistory, []string{"end", "G"}, ActionGoToBottom)
}

func registerSearchBindings(r *Registry) {
	r.RegisterMultiple(ContextSearch, []string{"enter", "esc"}, ActionCloseSearch)
}

func registerResponseBindings(r *Registry) {
	r.RegisterMultiple(ContextResponse, []string{"up", "k"}, ActionScrollUp)
	r.RegisterMultiple(ContextResponse, []string{"down", "j"}, ActionScrollDown)
	r.Register(ContextResponse, "pgup", ActionPageUp)
	r.Register(ContextResponse, "pgdown", ActionPageDown)
	r.Register(ContextResponse, "c", ActionCopyResponse)
}
