// Package httpclient provides a configurable HTTP client builder for the workflow engine.
//
// This package allows SDK consumers to define named HTTP clients with custom authentication,
// headers, timeouts, and other options via configuration. Built clients are kept by name
// in a Registry; the httpRequest node kind does not look clients up in it.
//
// # Features
//
//   - Multiple named HTTP clients with independent configurations
//   - Authentication: None (default), Basic Auth, Bearer Token
//   - Configurable timeouts, connection pooling, and network settings
//   - Default headers and query parameters
//   - SSRF checks on redirect targets, using the engine's security settings
//   - Thread-safe client registry
//
// # Authentication Types
//
// The package supports three authentication types:
//
//   - None: No authentication (default)
//   - Basic: HTTP Basic Authentication with username and password
//   - Bearer: Bearer Token authentication
//
// Future extensions may include OAuth2 and other authentication mechanisms.
//
// # Example Usage
//
//	// Create client configuration
//	config := &httpclient.ClientConfig{
//	    Name:     "api-client",
//	    AuthType: httpclient.AuthTypeBearer,
//	    Token:    httpclient.NewSecureString("your-api-token"),
//	    Timeout:  60 * time.Second,
//	    DefaultHeaders: map[string]string{
//	        "Content-Type": "application/json",
//	    },
//	}
//
//	// Build the client
//	builder := httpclient.NewBuilder(engineConfig)
//	client, err := builder.Build(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Register in registry
//	registry := httpclient.NewRegistry()
//	registry.Register("api-client", client)
//
//	// Use the registered client directly, or expose it over the server's
//	// HTTP client management API (/api/v1/httpclient/register, /list).
//	resp, err := client.Get("https://api.example.com/resource")
//
// # Configuration File Format
//
// ClientConfig carries json and yaml field tags with the names shown below.
// This package reads no file itself and does not expand ${...} references,
// and nothing in the module reads an http_clients key; the caller decodes
// the document and passes each entry to Builder.Build:
//
//	http_clients:
//	  - name: "github-api"
//	    description: "GitHub API client"
//	    auth_type: "bearer"
//	    token: "${GITHUB_TOKEN}"
//	    base_url: "https://api.github.com"
//	    timeout: "30s"
//	    default_headers:
//	      Accept: "application/vnd.github.v3+json"
//	      User-Agent: "Thaiyyal Workflow"
//
//	  - name: "internal-api"
//	    description: "Internal service API"
//	    auth_type: "basic"
//	    username: "service-account"
//	    password: "${API_PASSWORD}"
//	    timeout: "10s"
//	    max_redirects: 5
//
// # Security Considerations
//
//   - Redirect targets are checked against the engine configuration's SSRF
//     settings; the URL of the initial request is not checked by the client
//   - Credentials should be passed via environment variables, not hardcoded
//   - MaxResponseSize is carried in the config and returned by
//     Registry.GetHTTPClient; the client itself does not cap response bodies
//   - Redirect validation prevents redirect-based SSRF attacks
//   - Connection pooling limits prevent resource exhaustion
package httpclient
