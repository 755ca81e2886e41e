// Package notify delivers completion notifications.
//
// FyneNotifier posts OS notifications through the Fyne application and hands
// the deep link to the GUI. TerminalNotifier renders the same payload for the
// headless fetch command.
package notify
