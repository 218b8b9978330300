package cmd

type Config struct {
	HTTPPort              string
	DBHost                string
	DBPort                string
	DBUser                string
	DBPassword            string
	DBName                string
	DBSslMode             string
	GatewayBaseURL        string
	GatewayToken          string
	ActorID               string
	ActorRole             string
	KafkaHost             string
	KafkaConsumerGroup    string
	KafkaOrderEventsTopic string
	CacheTTL              string
}
