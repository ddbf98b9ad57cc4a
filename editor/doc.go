// Package editor embeds an engine instance in a Bubble Tea program.
//
// A Model is created from Props. Init starts engine initialization; when the
// engine arrives the instance is created once, against the Model's container,
// from the props current at that moment. After that, SetProps (or a PropsMsg)
// reconciles each prop independently: options, value, language, scroll line,
// and theme. Deactivate disposes the instance, or cancels initialization that
// has not finished.
//
// Snippets and service overrides are read at creation only. ControlledMode is
// read by the value rule each time the value changes. Width, height, and the
// loading text only affect the container.
package editor
