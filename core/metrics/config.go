package metrics

// Config defines settings for metrics sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled" yaml:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port" yaml:"prometheus_port"`
	InfluxEnabled     bool   `json:"influx_enabled" yaml:"influx_enabled"`
	InfluxURL         string `json:"influx_url" yaml:"influx_url"`
	InfluxToken       string `json:"influx_token" yaml:"influx_token"`
	InfluxOrg         string `json:"influx_org" yaml:"influx_org"`
	InfluxBucket      string `json:"influx_bucket" yaml:"influx_bucket"`
}
