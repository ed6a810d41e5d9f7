// Package input turns key presses into named editor actions.
//
// An Action names a command in the dispatcher's command table, with its
// arguments and repeat count. A Context describes the editor state key
// bindings are evaluated against; keymap bindings read it through named
// condition values such as "auto_complete_visible".
//
//	ctx := input.NewContext()
//	ctx.AutoCompleteVisible = popupOpen
//	if b, ok := keymaps.Lookup([]key.Event{ev}, ctx); ok {
//	    dispatcher.Dispatch(b.Action(input.SourceKeyboard))
//	}
package input
