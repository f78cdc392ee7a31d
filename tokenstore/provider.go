package tokenstore

import "context"

// KeyProvider reads a bearer token from a Getter under a fixed key on every
// call. It satisfies apiclient.TokenProvider.
type KeyProvider struct {
	getter Getter
	key    string
}

// Provider returns a KeyProvider for key. An empty key means DefaultKey.
func Provider(g Getter, key string) *KeyProvider {
	if key == "" {
		key = DefaultKey
	}
	return &KeyProvider{getter: g, key: key}
}

// Key returns the storage key the token is read from.
func (p *KeyProvider) Key() string { return p.key }

// Token reads the current value. Store errors are returned unchanged and an
// empty stored value reads as absent.
func (p *KeyProvider) Token(ctx context.Context) (string, bool, error) {
	v, ok, err := p.getter.Get(ctx, p.key)
	if err != nil {
		return "", false, err
	}
	if !ok || v == "" {
		return "", false, nil
	}
	return v, true, nil
}
