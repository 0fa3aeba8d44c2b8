// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/unitconv/internal/session"
	"github.com/jeranaias/unitconv/internal/util"
)

// SnapshotExt selects the MessagePack codec in SaveFile and LoadFile.
const SnapshotExt = ".msgpack"

// IsSnapshot reports whether path names a MessagePack snapshot.
func IsSnapshot(path string) bool {
	return strings.EqualFold(filepath.Ext(path), SnapshotExt)
}

// Encode serialises s in the format chosen by path's extension.
func Encode(s Settings, path string) ([]byte, error) {
	if IsSnapshot(path) {
		return MarshalSnapshot(s)
	}
	return Marshal(s)
}

// SaveFile exports st's settings to path atomically.
func SaveFile(path string, st *session.State) error {
	data, err := Encode(Export(st), path)
	if err != nil {
		return err
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	log.Printf("SETTINGS_EXPORT | session=%s path=%s bytes=%d", st.ID(), path, len(data))
	return nil
}

// LoadFile imports settings from path into st. Read errors are returned as
// is; content errors are *MalformedImportError.
func LoadFile(path string, st *session.State) (Applied, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Applied{}, fmt.Errorf("read settings: %w", err)
	}
	if IsSnapshot(path) {
		return ImportSnapshot(data, st)
	}
	return Import(data, st)
}

// Restore loads a previously saved state file into st. A missing file is not
// an error and leaves st unchanged.
func Restore(path string, st *session.State) (Applied, error) {
	applied, err := LoadFile(path, st)
	if errors.Is(err, fs.ErrNotExist) {
		return Applied{}, nil
	}
	return applied, err
}
