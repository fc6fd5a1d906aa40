package server

import (
	"bufio"
	"bytes"
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/ssh"
	gossh "golang.org/x/crypto/ssh"

	"github.com/renato0307/keebs/internal/logging"
)

// DefaultAuthorizedKeysPath returns ~/.ssh/authorized_keys
func DefaultAuthorizedKeysPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".ssh", "authorized_keys"), nil
}

// publicKeyHandler accepts keys listed in the authorized_keys file
func (s *Server) publicKeyHandler(ctx ssh.Context, key ssh.PublicKey) bool {
	fingerprint := getKeyFingerprint(key)
	authorized := isKeyAuthorized(key, s.authorizedKeysPath)

	if authorized {
		logging.Logger.Info("SSH key authenticated",
			"user", ctx.User(),
			"fingerprint", fingerprint,
			"key_type", key.Type())
	} else {
		logging.Logger.Warn("Unauthorized SSH key",
			"user", ctx.User(),
			"fingerprint", fingerprint,
			"key_type", key.Type())
	}
	return authorized
}

// isKeyAuthorized checks if the client's public key is in authorized_keys
func isKeyAuthorized(clientKey ssh.PublicKey, authorizedKeysPath string) bool {
	file, err := os.Open(authorizedKeysPath)
	if err != nil {
		logging.Logger.Warn("Failed to open authorized_keys", "error", err, "path", authorizedKeysPath)
		return false
	}
	defer file.Close()

	want := clientKey.Marshal()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		authorizedKey, _, _, _, err := gossh.ParseAuthorizedKey([]byte(line))
		if err != nil {
			logging.Logger.Debug("Failed to parse authorized key line", "error", err)
			continue
		}
		if bytes.Equal(want, authorizedKey.Marshal()) {
			return true
		}
	}

	if err := scanner.Err(); err != nil {
		logging.Logger.Error("Error reading authorized_keys", "error", err)
	}
	return false
}

// getKeyFingerprint returns the MD5 fingerprint of an SSH public key
// in the format "MD5:xx:xx:xx:..."
func getKeyFingerprint(key ssh.PublicKey) string {
	hash := md5.Sum(key.Marshal())
	fingerprint := make([]string, len(hash))
	for i, b := range hash {
		fingerprint[i] = fmt.Sprintf("%02x", b)
	}
	return "MD5:" + strings.Join(fingerprint, ":")
}
