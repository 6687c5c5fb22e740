package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/ConnectHealth/HealthBot/internal/api"
	"github.com/ConnectHealth/HealthBot/internal/convo"
	"github.com/ConnectHealth/HealthBot/internal/dialer"
	"github.com/ConnectHealth/HealthBot/internal/genai"
	"github.com/ConnectHealth/HealthBot/internal/reply"
	"github.com/ConnectHealth/HealthBot/internal/util"
)

func main() {
	initializeLogger()

	config := loadEnvironmentConfig()
	flags := parseCommandLineFlags(config)

	apiOpts := buildAPIOptions(flags)

	slog.Info("Bootstrapping HealthBot with configured modules")
	if err := api.Run(apiOpts...); err != nil {
		slog.Error("HealthBot failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("HealthBot exited successfully")
}

// Config holds environment configuration
type Config struct {
	APIAddr      string
	ChatEndpoint string
	OpenAIKey    string
	TwilioSID    string
	TwilioToken  string
	TwilioFrom   string
	Debug        bool
}

// Flags holds command line flag values
type Flags struct {
	apiAddr      *string
	chatEndpoint *string
	openaiKey    *string
	twilioSID    *string
	twilioToken  *string
	twilioFrom   *string
}

// initializeLogger sets up structured logging
func initializeLogger() {
	level := slog.LevelInfo
	if util.ParseBoolEnv("HEALTHBOT_DEBUG", false) {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		APIAddr:      os.Getenv("API_ADDR"),
		ChatEndpoint: os.Getenv("CHAT_ENDPOINT_URL"),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		TwilioSID:    os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFrom:   os.Getenv("TWILIO_FROM_NUMBER"),
	}

	slog.Debug("environment variables loaded",
		"API_ADDR", config.APIAddr,
		"CHAT_ENDPOINT_URL_SET", config.ChatEndpoint != "",
		"OPENAI_API_KEY_SET", config.OpenAIKey != "",
		"TWILIO_ACCOUNT_SID_SET", config.TwilioSID != "",
		"TWILIO_AUTH_TOKEN_SET", config.TwilioToken != "",
		"TWILIO_FROM_NUMBER_SET", config.TwilioFrom != "")

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		apiAddr:      flag.String("api-addr", config.APIAddr, "API server address (overrides $API_ADDR)"),
		chatEndpoint: flag.String("chat-endpoint", config.ChatEndpoint, "remote chat endpoint URL for free-text replies (overrides $CHAT_ENDPOINT_URL)"),
		openaiKey:    flag.String("openai-api-key", config.OpenAIKey, "OpenAI API key for generated replies (overrides $OPENAI_API_KEY)"),
		twilioSID:    flag.String("twilio-account-sid", config.TwilioSID, "Twilio account SID for helpline dial-out (overrides $TWILIO_ACCOUNT_SID)"),
		twilioToken:  flag.String("twilio-auth-token", config.TwilioToken, "Twilio auth token (overrides $TWILIO_AUTH_TOKEN)"),
		twilioFrom:   flag.String("twilio-from-number", config.TwilioFrom, "Twilio caller ID for outbound calls (overrides $TWILIO_FROM_NUMBER)"),
	}

	flag.Parse()

	slog.Debug("flags parsed",
		"apiAddr", *flags.apiAddr,
		"chatEndpoint_set", *flags.chatEndpoint != "",
		"openaiKeySet", *flags.openaiKey != "",
		"twilioConfigured", *flags.twilioSID != "" && *flags.twilioToken != "")

	return flags
}

// buildResponder selects the free-text reply source: the remote chat endpoint
// when configured, then OpenAI, then the canned acknowledgement.
func buildResponder(flags Flags) convo.Responder {
	if *flags.chatEndpoint != "" {
		responder, err := reply.NewHTTPResponder(reply.WithEndpoint(*flags.chatEndpoint))
		if err != nil {
			slog.Error("Failed to configure chat endpoint responder, falling back to canned replies", "error", err)
			return &reply.StaticResponder{}
		}
		slog.Info("Free-text replies served by remote chat endpoint")
		return responder
	}
	if *flags.openaiKey != "" {
		client, err := genai.NewClient(genai.WithAPIKey(*flags.openaiKey))
		if err != nil {
			slog.Error("Failed to configure OpenAI responder, falling back to canned replies", "error", err)
			return &reply.StaticResponder{}
		}
		slog.Info("Free-text replies served by OpenAI")
		return client
	}
	slog.Info("No reply backend configured, using canned acknowledgement")
	return &reply.StaticResponder{}
}

// buildDialer configures the Twilio dialer when credentials are present.
// Without one the dial endpoint reports the capability as unavailable.
func buildDialer(flags Flags) dialer.Dialer {
	if *flags.twilioSID == "" && *flags.twilioToken == "" {
		return nil
	}
	d, err := dialer.NewTwilioDialer(
		dialer.WithAccountSID(*flags.twilioSID),
		dialer.WithAuthToken(*flags.twilioToken),
		dialer.WithFromNumber(*flags.twilioFrom),
	)
	if err != nil {
		slog.Warn("Twilio dialer not available", "error", err)
		return nil
	}
	slog.Info("Helpline dial-out enabled via Twilio")
	return d
}

// buildAPIOptions constructs API server configuration options
func buildAPIOptions(flags Flags) []api.Option {
	apiOpts := []api.Option{
		api.WithResponder(buildResponder(flags)),
	}
	if *flags.apiAddr != "" {
		apiOpts = append(apiOpts, api.WithAddr(*flags.apiAddr))
	}
	if d := buildDialer(flags); d != nil {
		apiOpts = append(apiOpts, api.WithDialer(d))
	}
	return apiOpts
}
