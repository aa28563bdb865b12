package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	ContextGlobal   Context = "global"   // Available everywhere
	ContextTabs     Context = "tabs"     // Tab bar focused, no field being edited
	ContextForm     Context = "form"     // Editing a text field of the request or config form
	ContextHistory  Context = "history"  // History table
	ContextSearch   Context = "search"   // History search input
	ContextResponse Context = "response" // Response viewport
)

const (
	ActionQuit      Action = "quit"       // Quit application
	ActionQuitForce Action = "quit_force" // Force quit (ctrl+c)
	ActionHelp      Action = "toggle_help"

	// Tabs
	ActionNextTab    Action = "next_tab"
	ActionPrevTab    Action = "prev_tab"
	ActionTabRequest Action = "tab_request"
	ActionTabHistory Action = "tab_history"
	ActionTabConfig  Action = "tab_config"
	ActionFocusForm  Action = "focus_form"
	ActionBlurForm   Action = "blur_form"
	ActionNextField  Action = "next_field"
	ActionPrevField  Action = "prev_field"
	ActionSubmit     Action = "submit"
	ActionSaveConfig Action = "save_config"
	ActionRestore    Action = "restore_config"
	ActionPrefill    Action = "prefill_request"
	ActionPing       Action = "ping"

	// History
	ActionRefreshHistory Action = "refresh_history"
	ActionOpenSearch     Action = "open_search"
	ActionCloseSearch    Action = "close_search"
	ActionClearSearch    Action = "clear_search"

	// Response
	ActionCopyResponse Action = "copy_response"
	ActionScrollUp     Action = "scroll_up"
	ActionScrollDown   Action = "scroll_down"
	ActionPageUp       Action = "page_up"
	ActionPageDown     Action = "page_down"
	ActionGoToTop      Action = "go_to_top"
	ActionGoToBottom   Action = "go_to_bottom"
)

// AllContexts lists every context in a stable order
var AllContexts = []Context{
	ContextGlobal,
	ContextTabs,
	ContextForm,
	ContextHistory,
	ContextSearch,
	ContextResponse,
}

// KnownActions is the set of actions a binding may name
var KnownActions = map[Action]bool{
	ActionQuit: true, ActionQuitForce: true, ActionHelp: true,
	ActionNextTab: true, ActionPrevTab: true,
	ActionTabRequest: true, ActionTabHistory: true, ActionTabConfig: true,
	ActionFocusForm: true, ActionBlurForm: true, ActionNextField: true, ActionPrevField: true,
	ActionSubmit: true, ActionSaveConfig: true, ActionRestore: true, ActionPrefill: true, ActionPing: true,
	ActionRefreshHistory: true, ActionOpenSearch: true, ActionCloseSearch: true, ActionClearSearch: true,
	ActionCopyResponse: true, ActionScrollUp: true, ActionScrollDown: true,
	ActionPageUp: true, ActionPageDown: true, ActionGoToTop: true, ActionGoToBottom: true,
}
