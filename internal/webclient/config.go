package webclient

type Client string

const (
	ClientNetHTTP Client = "nethttp"
)

// Config selects and configures the WebClient backend.
type Config struct {
	Client Client
}
