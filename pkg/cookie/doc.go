// Package cookie manages the plugin's two browser cookies: the state-binding
// cookie set when a login attempt starts, and the loop-prevention marker set
// after every attempt.
//
// Both are HMAC-SHA256 signed so a visitor cannot forge a state binding or
// clear their marker early by editing cookie values. Signing requires a
// secret of at least 32 bytes; without one, SetSigned and GetSigned return
// ErrNoSecret and the flow degrades to server-side state only.
package cookie
