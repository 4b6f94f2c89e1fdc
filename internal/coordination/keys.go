package coordination

// Key builders live in one place so the namespaces cannot drift apart
// across the four coordination call sites.

func RateKey(identity string) string { return "rate_limit:" + identity }

func ListingKey(fingerprint string) string { return "cache:products:" + fingerprint }

func WebhookKey(eventID string) string { return "webhook:event:" + eventID }

func TokenKey(provider string) string { return "token:" + provider }
