package host

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/extkit/extbuild/internal/config"
)

// WriteConfig writes data/config.php under siteDir with the database
// settings and developer mode enabled.
func WriteConfig(siteDir string, db config.Database) error {
	port := "null"
	if db.Port != 0 {
		port = strconv.Itoa(db.Port)
	}
	charset := "null"
	if db.Charset != "" {
		charset = phpString(db.Charset)
	}

	var b strings.Builder
	b.WriteString("<?php\n")
	b.WriteString("return [\n")
	b.WriteString("    'database' => [\n")
	fmt.Fprintf(&b, "        'host' => %s,\n", phpString(db.Host))
	fmt.Fprintf(&b, "        'port' => %s,\n", port)
	fmt.Fprintf(&b, "        'charset' => %s,\n", charset)
	fmt.Fprintf(&b, "        'dbname' => %s,\n", phpString(db.DBName))
	fmt.Fprintf(&b, "        'user' => %s,\n", phpString(db.User))
	fmt.Fprintf(&b, "        'password' => %s,\n", phpString(db.Password))
	b.WriteString("    ],\n")
	b.WriteString("    'isDeveloperMode' => true,\n")
	b.WriteString("    'useCache' => true,\n")
	b.WriteString("];\n")

	dataDir := filepath.Join(siteDir, "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dataDir, err)
	}
	path := filepath.Join(dataDir, "config.php")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// phpString quotes s as a single-quoted PHP literal.
func phpString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}
