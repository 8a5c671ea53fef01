package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
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

// tierList collects a comma separated tier order. It implements flag.Value.
type tierList []string

func (l *tierList) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(*l, ",")
}

func (l *tierList) Set(s string) error {
	*l = (*l)[:0]
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			*l = append(*l, name)
		}
	}
	return nil
}

// ParseFlags parses all configuration flags from os.Args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-grpc-address grpc server address in format [host]:[port]
//	-d server database DSN
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-hash-key request hash key
//	-encryption-secret device tier encryption secret
//	-user-id player id
//	-token player token
//	-remote remote progress store address
//	-sqlite client database tier path
//	-device-dir device tier directory
//	-session-dir session tier directory
//	-cache-address redis address
//	-tiers comma separated tier order
//	-conflict-strategy client-wins, server-wins or merge
//	-sync-interval remote sync period
//	-metrics-address client metrics listen address
//	-backup-retention backups kept per user and tier
func ParseFlags() (*StructuredConfig, error) {
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)

	var serverAddress, grpcServerAddress NetAddress
	var tiers tierList
	var (
		databaseDSN      string
		jsonConfigPath   string
		tokenSignKey     string
		tokenIssuer      string
		tokenDuration    time.Duration
		requestTimeout   time.Duration
		hashKey          string
		encryptionSecret string
		userID           string
		token            string
		remoteAddress    string
		sqliteDSN        string
		deviceDir        string
		sessionDir       string
		cacheAddress     string
		conflictStrategy string
		syncInterval     time.Duration
		metricsAddress   string
		backupRetention  int
	)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&hashKey, "hash-key", "", "Request hash key")
	fs.StringVar(&encryptionSecret, "encryption-secret", "", "Device tier encryption secret")
	fs.StringVar(&userID, "user-id", "", "Player id")
	fs.StringVar(&token, "token", "", "Player token")
	fs.StringVar(&remoteAddress, "remote", "", "Remote progress store address")
	fs.StringVar(&sqliteDSN, "sqlite", "", "Client database tier path")
	fs.StringVar(&deviceDir, "device-dir", "", "Device tier directory")
	fs.StringVar(&sessionDir, "session-dir", "", "Session tier directory")
	fs.StringVar(&cacheAddress, "cache-address", "", "Redis address host:port")
	fs.Var(&tiers, "tiers", "Comma separated tier order")
	fs.StringVar(&conflictStrategy, "conflict-strategy", "", "client-wins, server-wins or merge")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Remote sync period")
	fs.StringVar(&metricsAddress, "metrics-address", "", "Client metrics listen address")
	fs.IntVar(&backupRetention, "backup-retention", 0, "Backups kept per user and tier")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			HashKey:          hashKey,
			EncryptionSecret: encryptionSecret,
			TokenSignKey:     tokenSignKey,
			TokenIssuer:      tokenIssuer,
			TokenDuration:    tokenDuration,
			MetricsAddress:   metricsAddress,
		},
		Identity: Identity{
			UserID: userID,
			Token:  token,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Local: Local{
				SQLiteDSN:  sqliteDSN,
				DeviceDir:  deviceDir,
				SessionDir: sessionDir,
			},
			BackupRetention: backupRetention,
		},
		Cache: Cache{
			Address: cacheAddress,
		},
		Adapter: Adapter{
			HTTPAddress:    remoteAddress,
			RequestTimeout: requestTimeout,
		},
		Orchestrator: Orchestrator{
			Tiers:            tiers,
			ConflictStrategy: conflictStrategy,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Workers:      Workers{SyncInterval: syncInterval},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
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
