package bongo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Severity ranks a validation finding.
type Severity uint8

const (
	SeverityWarning Severity = iota // pack loads, something will be missing
	SeverityError                   // pack or mode will not load as intended
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Finding is one problem reported by ValidatePack.
type Finding struct {
	Severity Severity
	Path     string
	Message  string
}

func (f Finding) String() string {
	if f.Path == "" {
		return f.Message
	}
	return fmt.Sprintf("%s: %s", f.Path, f.Message)
}

// ValidationReport is the outcome of ValidatePack.
type ValidationReport struct {
	Root     string
	Modes    []string
	Faces    int
	Findings []Finding
}

// OK reports whether the pack has no errors. Warnings are allowed.
func (r *ValidationReport) OK() bool { return len(r.Errors()) == 0 }

// Errors returns the error findings.
func (r *ValidationReport) Errors() []Finding { return r.filter(SeverityError) }

// Warnings returns the warning findings.
func (r *ValidationReport) Warnings() []Finding { return r.filter(SeverityWarning) }

func (r *ValidationReport) filter(sev Severity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}

func (r *ValidationReport) errorf(path, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{SeverityError, path, fmt.Sprintf(format, args...)})
}

func (r *ValidationReport) warnf(path, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{SeverityWarning, path, fmt.Sprintf(format, args...)})
}

// ValidatePack checks an asset pack without decoding any image. root may
// name the pack directory or its avatar.json. Problems are collected rather
// than returned, so one run reports everything.
func ValidatePack(root string) *ValidationReport {
	root = canonicalPath(root)
	r := &ValidationReport{Root: root}

	var settings *Settings
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		settings = r.checkAvatarManifest(root)
		root = filepath.Dir(root)
		r.Root = root
	} else if fileExists(filepath.Join(root, avatarManifestName)) {
		settings = r.checkAvatarManifest(filepath.Join(root, avatarManifestName))
	}

	r.checkFace(root)
	r.Modes = r.checkModeList(root)
	for _, mode := range r.Modes {
		r.checkMode(filepath.Join(root, modeDirName, mode), mode)
	}

	if settings != nil && settings.DefaultMode != "" && !contains(r.Modes, settings.DefaultMode) {
		r.errorf(avatarManifestName, "default_mode %q is not in the mode list", settings.DefaultMode)
	}
	return r
}

// readFields decodes a JSON object into raw fields, reporting missing files
// and syntax errors.
func (r *ValidationReport) readFields(path string) map[string]json.RawMessage {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.errorf(path, "file not found")
		} else {
			r.errorf(path, "read: %v", err)
		}
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		r.errorf(path, "invalid JSON: %v", err)
		return nil
	}
	return fields
}

// field decodes fields[name] into v, reporting a missing or mistyped field
// when required.
func (r *ValidationReport) field(path string, fields map[string]json.RawMessage, name string, v any, required bool) bool {
	raw, ok := fields[name]
	if !ok {
		if required {
			r.errorf(path, "missing field %q", name)
		}
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		r.errorf(path, "field %q: %v", name, err)
		return false
	}
	return true
}

func (r *ValidationReport) checkAvatarManifest(path string) *Settings {
	fields := r.readFields(path)
	if fields == nil {
		return nil
	}
	var avatar struct {
		Settings *Settings `json:"settings"`
	}
	if !r.field(path, fields, "avatar", &avatar, true) {
		return nil
	}
	if avatar.Settings == nil {
		r.warnf(path, "no settings; the first mode will be the default")
	}
	return avatar.Settings
}

func (r *ValidationReport) checkFace(root string) {
	dir := filepath.Join(root, faceDirName)
	path := filepath.Join(dir, configManifestName)
	fields := r.readFields(path)
	if fields == nil {
		return
	}
	var hotKeys, images []string
	okKeys := r.field(path, fields, "HotKey", &hotKeys, true)
	okImages := r.field(path, fields, "FaceImageName", &images, true)
	if !okKeys || !okImages {
		return
	}
	if len(hotKeys) != len(images) {
		r.errorf(path, "HotKey count (%d) != FaceImageName count (%d)", len(hotKeys), len(images))
	}
	for _, img := range images {
		if p := filepath.Join(dir, filepath.FromSlash(img)); !fileExists(p) {
			r.errorf(p, "missing face image")
		}
	}
	r.Faces = min(len(hotKeys), len(images))
}

func (r *ValidationReport) checkModeList(root string) []string {
	path := filepath.Join(root, modeDirName, configManifestName)
	fields := r.readFields(path)
	if fields == nil {
		return nil
	}
	var modes []string
	if !r.field(path, fields, "ModelPath", &modes, true) {
		return nil
	}
	if len(modes) == 0 {
		r.errorf(path, "empty mode list")
	}
	return modes
}

func (r *ValidationReport) checkMode(dir, name string) {
	if !dirExists(dir) {
		r.errorf(dir, "mode directory not found")
		return
	}
	path := filepath.Join(dir, configManifestName)
	fields := r.readFields(path)
	if fields == nil {
		return
	}
	data, _ := json.Marshal(fields)
	var m modeManifest
	if err := json.Unmarshal(data, &m); err != nil {
		r.errorf(path, "decode mode %s: %v", name, err)
		return
	}

	for _, f := range [...]string{"BackgroundImageName", "CatBackgroundImageName"} {
		var file string
		if r.field(path, fields, f, &file, true) && file != "" {
			if p := filepath.Join(dir, filepath.FromSlash(file)); !fileExists(p) {
				r.errorf(p, "missing background")
			}
		}
	}

	schema, _ := probeModeSchema(data)
	if schema == SchemaKeyMapping {
		r.checkKeyMapping(dir, path, &m)
	} else {
		r.checkLegacy(dir, path, &m)
	}
}

func (r *ValidationReport) checkKeyMapping(dir, path string, m *modeManifest) {
	for _, h := range [...]Hand{HandLeft, HandRight} {
		_, up, _ := m.handFields(h)
		if up == "" {
			continue
		}
		if p := filepath.Join(dir, filepath.FromSlash(up)); !fileExists(p) {
			r.errorf(p, "missing %s hand up image", h)
		}
	}

	names := make([]string, 0, len(m.KeyMapping))
	for name := range m.KeyMapping {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := KeyCode(name); !ok {
			r.warnf(path, "unknown key name %q", name)
			continue
		}
		pair := m.KeyMapping[name]
		if len(pair) == 0 {
			r.warnf(path, "key %q has no images", name)
			continue
		}
		for i, file := range pair {
			if file == "" {
				continue
			}
			if p := filepath.Join(dir, filepath.FromSlash(file)); !fileExists(p) {
				what := "key image"
				if i == 1 {
					what = "hand frame"
				}
				r.warnf(p, "missing %s for %q", what, name)
			}
		}
	}
}

func (r *ValidationReport) checkLegacy(dir, path string, m *modeManifest) {
	for _, h := range [...]Hand{HandLeft, HandRight} {
		handDir, up, frames := m.handFields(h)
		if handDir == "" {
			continue
		}
		full := filepath.Join(dir, filepath.FromSlash(handDir))
		if !dirExists(full) {
			r.errorf(full, "missing %s hand directory", h)
			continue
		}
		if up != "" {
			if p := filepath.Join(full, filepath.FromSlash(up)); !fileExists(p) {
				r.errorf(p, "missing %s hand up image", h)
			}
		}
		for _, img := range frames {
			if p := filepath.Join(full, filepath.FromSlash(img)); !fileExists(p) {
				r.warnf(p, "missing %s hand frame", h)
			}
		}
	}

	if m.KeysImagePath != "" {
		keys := filepath.Join(dir, filepath.FromSlash(m.KeysImagePath))
		if !dirExists(keys) {
			r.errorf(keys, "missing keys directory")
		} else {
			for _, img := range m.KeysImageName {
				if p := filepath.Join(keys, filepath.FromSlash(img)); !fileExists(p) {
					r.warnf(p, "missing key image")
				}
			}
		}
	}
	for _, name := range m.KeyUse {
		if _, ok := KeyCode(name); !ok {
			r.warnf(path, "unknown key name %q", name)
		}
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
