// Package devmode holds the token shared with a backend running in local
// development mode.
package devmode

// Token is accepted by a dev-mode backend as a valid bearer token.
// It is intentionally obvious and must never be used in production.
const Token = "LOCAL_DEV_MODE_NOT_FOR_PRODUCTION"
