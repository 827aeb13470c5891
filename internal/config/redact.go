package config

import "net/url"

const redacted = "xxxxx"

// Redacted returns a copy of cfg safe to log: tokens, the pseudonym key,
// userinfo passwords and the ledger DSN password are masked.
func (cfg StructuredConfig) Redacted() StructuredConfig {
	c := cfg
	for _, ep := range []*Endpoint{&c.Source, &c.Destination, &c.Index.Search, &c.Index.Collector, &c.Measure} {
		ep.Address = redactURL(ep.Address)
		if ep.Token != "" {
			ep.Token = redacted
		}
	}
	if c.Transforms.PseudonymKey != "" {
		c.Transforms.PseudonymKey = redacted
	}
	c.Storage.DB.DSN = redactURL(c.Storage.DB.DSN)
	return c
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), redacted)
	}
	return u.String()
}
