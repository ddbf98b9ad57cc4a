// Package engine is the editing engine that editor components embed.
//
// An Engine is a namespace shared by every instance it creates: it owns the
// language registry, theme definitions, the active theme, and completion
// providers. An Instance is one live editing surface bound to a Mount; it owns
// a Model (text buffer, language, tokens), an options document, scroll state,
// and a completion popup. Instances are Bubble Tea sub-components: hosts
// forward messages to Update and draw View.
//
// Theme state is process-wide per Engine: applying a theme through any handle
// restyles every instance created by that Engine.
package engine
