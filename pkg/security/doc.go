// Package security provides SSRF protection for outbound HTTP requests
// issued on a flow's behalf (the httpRequest node and the ad hoc
// playground endpoint).
//
// # Usage
//
//	protection := security.NewSSRFProtectionWithConfig(security.SSRFConfig{
//	    AllowedSchemes:  []string{"https"},
//	    BlockPrivateIPs: true,
//	})
//	if err := protection.ValidateURL(targetURL); err != nil {
//	    return fmt.Errorf("URL not allowed: %w", err)
//	}
//
// ValidateURL resolves the URL's host and rejects it if the scheme isn't
// allowed, or the resolved IP is private, link-local, loopback (unless
// explicitly allowed), or a cloud metadata address.
package security
