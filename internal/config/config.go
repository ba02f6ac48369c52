package config

import (
	"os"
)

type Config struct {
	HTTPPort             string
	StoreBackend         string
	FirestoreProject     string
	FirestoreCredentials string
	QueuePath            string
	UserID               string
	LogLevel             string
	StartOffline         bool
}

func ProcessEnvironmentVariables() (*Config, error) {
	// Defaults run a self-contained instance against the in-memory store
	env := Config{
		HTTPPort:     "9446",
		StoreBackend: "memory",
		QueuePath:    "wallet-ledger-queue.db",
		UserID:       "local-user",
		LogLevel:     "info",
	}

	envHTTPPort := os.Getenv("HTTP_PORT")
	envStoreBackend := os.Getenv("STORE_BACKEND")
	envFirestoreProject := os.Getenv("FIRESTORE_PROJECT")
	envFirestoreCredentials := os.Getenv("FIRESTORE_CREDENTIALS")
	envQueuePath := os.Getenv("QUEUE_PATH")
	envUserID := os.Getenv("USER_ID")
	envLogLevel := os.Getenv("LOG_LEVEL")
	envStartOffline := os.Getenv("START_OFFLINE")

	if len(envHTTPPort) != 0 {
		env.HTTPPort = envHTTPPort
	}

	if len(envStoreBackend) != 0 {
		env.StoreBackend = envStoreBackend
	}

	if len(envFirestoreProject) != 0 {
		env.FirestoreProject = envFirestoreProject
	}

	if len(envFirestoreCredentials) != 0 {
		env.FirestoreCredentials = envFirestoreCredentials
	}

	if len(envQueuePath) != 0 {
		env.QueuePath = envQueuePath
	}

	if len(envUserID) != 0 {
		env.UserID = envUserID
	}

	if len(envLogLevel) != 0 {
		env.LogLevel = envLogLevel
	}

	env.StartOffline = envStartOffline == "true"

	return &env, nil
}
