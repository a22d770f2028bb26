package config

var Conf Config

type Config struct {
	Application Application `yaml:"application" json:"application"`
}

type Application struct {
	DisplayName string     `yaml:"display-name" json:"display_name"`
	Environment string     `yaml:"environment" json:"environment"`
	Server      Server     `yaml:"server" json:"server"`
	Datasource  Datasource `yaml:"datasource" json:"datasource"`
	Migration   string     `yaml:"migration"`
	Security    Security   `yaml:"security" json:"security"`
	Redis       Redis      `yaml:"redis" json:"redis"`
	WebAuthn    WebAuthn   `yaml:"webauthn" json:"webauthn"`
	Kafka       Kafka      `yaml:"kafka" json:"kafka"`
}

func (a Application) Production() bool {
	return a.Environment == "production"
}

type Server struct {
	ContextPath string `yaml:"context-path" json:"context_path"`
	ApiVersion  string `yaml:"api-version" json:"api_version"`
	Port        string `yaml:"port"`
}

type Datasource struct {
	PrimaryURL            string `yaml:"primary-url" json:"primary_url"`
	MaxIdleConnections    int    `yaml:"max-idle-connections" json:"max_idle_connections"`
	MaxOpenConnections    int    `yaml:"max-open-connections" json:"max_open_connections"`
	ConnectionMaxLifetime int    `yaml:"connection-max-lifetime" json:"connection_max_lifetime"`
}

type Security struct {
	Secret                   string `yaml:"secret" json:"-"`
	Issuer                   string `yaml:"issuer" json:"issuer"`
	SessionValidityInSeconds int    `yaml:"session-validity-in-seconds" json:"session_validity_in_seconds"`
	StrictSignCounter        bool   `yaml:"strict-sign-counter" json:"strict_sign_counter"`
}

type Redis struct {
	Host string `yaml:"address" json:"address"`
}

type WebAuthn struct {
	RpDisplayName         string `yaml:"rp-display-name" json:"rp_display_name"`
	RpOrigin              string `yaml:"rp-origin" json:"rp_origin"`
	RpID                  string `yaml:"rp-id" json:"rp_id"`
	ChallengeTTLInSeconds int    `yaml:"challenge-ttl-in-seconds" json:"challenge_ttl_in_seconds"`
}

type Kafka struct {
	Brokers []string `yaml:"brokers" json:"brokers"`
	Topic   string   `yaml:"topic" json:"topic"`
}
