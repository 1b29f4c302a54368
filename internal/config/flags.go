package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the process command line.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-adapter-address remote server address in format [host]:[port]
//	-backend storage backend (memory, fs, sqlite, postgres)
//	-f batch directory of the fs backend
//	-d database DSN
//	-c/-config json file path with configs
//	-max-batch-size maximum serialized size of one batch in bytes
//	-max-upload-entities maximum number of entities in one upload
//	-policy default resolution policy
//	-scopes comma separated scope specs
//	-diagnostics-key diagnostics token signing key
//	-verbose-errors expose error details to every caller
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-janitor-interval janitor run interval (e.g., "10m")
//	-namespace-ttl age after which abandoned transfers are removed
func ParseFlags(args []string) (*StructuredConfig, error) {
	return parseFlags(args)
}

func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("go-sync-batch", flag.ContinueOnError)

	var serverAddress, adapterAddress NetAddress
	var backend, batchDir, databaseDSN, jsonConfigPath string
	var maxBatchSize, maxUploadEntities int
	var policy, scopes string
	var diagnosticsKey string
	var verboseErrors bool
	var requestTimeout, janitorInterval, namespaceTTL time.Duration

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&adapterAddress, "adapter-address", "Remote sync server address host:port")
	fs.StringVar(&backend, "backend", "", "Storage backend: memory, fs, sqlite or postgres")
	fs.StringVar(&batchDir, "f", "", "Batch directory")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.IntVar(&maxBatchSize, "max-batch-size", 0, "Maximum batch size in bytes")
	fs.IntVar(&maxUploadEntities, "max-upload-entities", 0, "Maximum entities in one upload")
	fs.StringVar(&policy, "policy", "", "Default resolution policy")
	fs.StringVar(&scopes, "scopes", "", "Comma separated scope specs")
	fs.StringVar(&diagnosticsKey, "diagnostics-key", "", "Diagnostics token signing key")
	fs.BoolVar(&verboseErrors, "verbose-errors", false, "Expose error details to every caller")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&janitorInterval, "janitor-interval", 0, "Janitor interval (e.g., 10m)")
	fs.DurationVar(&namespaceTTL, "namespace-ttl", 0, "Abandoned transfer TTL (e.g., 24h)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	var scopeList []string
	if scopes != "" {
		scopeList = strings.Split(scopes, ",")
	}

	return &StructuredConfig{
		App: App{
			DiagnosticsSignKey: diagnosticsKey,
		},
		Storage: Storage{
			Backend: backend,
			DB:      DB{DSN: databaseDSN},
			Files:   Files{BatchDir: batchDir},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
			VerboseErrors:  verboseErrors,
		},
		Sync: Sync{
			MaxBatchSize:      maxBatchSize,
			DefaultPolicy:     policy,
			Scopes:            scopeList,
			MaxUploadEntities: maxUploadEntities,
		},
		Adapter: Adapter{
			HTTPAddress:    adapterAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			JanitorInterval: janitorInterval,
			NamespaceTTL:    namespaceTTL,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// It returns an empty string when neither Host nor Port is set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
