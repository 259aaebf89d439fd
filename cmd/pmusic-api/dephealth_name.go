package main

import (
	"os"
	"strings"
)

// defaultServiceName — имя вершины графа topologymetrics вне Kubernetes.
const defaultServiceName = "pmusic-api"

// dephealthName определяет имя сервиса по hostname пода.
func dephealthName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return defaultServiceName
	}
	return parseOwnerName(host)
}

// parseOwnerName извлекает имя владельца пода из hostname:
// Deployment — "<name>-<rs-hash>-<pod-hash>", StatefulSet — "<name>-<ordinal>".
// Иначе hostname возвращается как есть.
func parseOwnerName(hostname string) string {
	parts := strings.Split(hostname, "-")
	n := len(parts)

	if n >= 3 && isPodHash(parts[n-1], 5, 5) && isPodHash(parts[n-2], 6, 10) {
		return strings.Join(parts[:n-2], "-")
	}
	if n >= 2 && isDigits(parts[n-1]) {
		return strings.Join(parts[:n-1], "-")
	}
	return hostname
}

func isPodHash(s string, minLen, maxLen int) bool {
	if len(s) < minLen || len(s) > maxLen {
		return false
	}
	for _, c := range s {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
