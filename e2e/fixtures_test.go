//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
)

const examsJSON = `{
  "source_title": "E2E exam schedule",
  "manifest": {"generated_at": "2025-01-02T08:00:00Z"},
  "exams": [
    {"id": "e1", "class_name": "B240402", "course_name": "Calculus", "start_time": "2025-01-08 14:00", "end_time": "16:00", "location": "A101"},
    {"id": "e2", "class_name": "B240403", "course_name": "Physics", "start_time": "2025-01-09 09:00", "end_time": "11:00", "location": "B202"},
    {"id": "e3", "class_name": "B240402", "course_name": "English", "start_time": "2025-01-10 09:00", "end_time": "11:00", "location": "C303"}
  ]
}`

// CreateTestWorkspace creates a temporary directory used as $HOME and cwd
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	dir, err := os.MkdirTemp("", "examfinder-e2e-*")
	if err != nil {
		return "", fmt.Errorf("failed to create workspace: %w", err)
	}
	tf.workspace = dir
	return dir, nil
}

// WriteDataset writes the fixture exam dataset into the workspace
func (tf *TUITestFramework) WriteDataset() (string, error) {
	return tf.WriteFile("exams.json", examsJSON)
}

// WriteFile writes content to name inside the workspace
func (tf *TUITestFramework) WriteFile(name, content string) (string, error) {
	path := filepath.Join(tf.workspace, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return path, nil
}

// startWithDataset prepares a workspace with the fixture dataset and starts the app
func (tf *TUITestFramework) startWithDataset(args ...string) error {
	if _, err := tf.CreateTestWorkspace(); err != nil {
		return err
	}
	data, err := tf.WriteDataset()
	if err != nil {
		return err
	}
	return tf.StartApp(append([]string{"-data", data}, args...)...)
}
