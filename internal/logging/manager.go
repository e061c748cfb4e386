package logging

import (
	"fmt"

	"hireboard-api/internal/config"
	"hireboard-api/internal/logging/adapters"
)

// Manager manages the logging system initialization and configuration
type Manager struct {
	factory *AdapterFactory
	logger  *MultiLogger
}

// NewManager creates a new logging manager
func NewManager() *Manager {
	return &Manager{
		factory: NewAdapterFactory(),
		logger:  NewMultiLogger(),
	}
}

// Initialize initializes the logging system from configuration
func (m *Manager) Initialize(cfg *config.Config) error {
	m.logger.SetLevel(ParseLogLevel(cfg.Logging.Level))

	if len(cfg.Logging.Adapters) == 0 {
		// No adapters configured, fall back to plain stdout
		stdout := adapters.NewStdoutAdapter("stdout", adapters.StdoutConfig{
			Format: cfg.Logging.Format,
		})
		return m.logger.AddAdapter(stdout)
	}

	for _, adapterConfig := range cfg.Logging.Adapters {
		if !adapterConfig.Enabled {
			continue
		}

		adapter, err := m.factory.CreateAdapter(AdapterConfig{
			Name:    adapterConfig.Name,
			Type:    adapterConfig.Type,
			Enabled: adapterConfig.Enabled,
			Options: adapterConfig.Options,
		})
		if err != nil {
			return fmt.Errorf("failed to create adapter %s: %w", adapterConfig.Name, err)
		}

		if err := m.logger.AddAdapter(adapter); err != nil {
			return fmt.Errorf("failed to add adapter %s: %w", adapterConfig.Name, err)
		}
	}

	return nil
}

// GetLogger returns the initialized logger
func (m *Manager) GetLogger() Logger {
	return m.logger
}

// Close closes the logging system
func (m *Manager) Close() error {
	if m.logger != nil {
		return m.logger.Close()
	}
	return nil
}

// Global manager instance
var globalManager *Manager

// InitializeLogging initializes the global logging system
func InitializeLogging(cfg *config.Config) error {
	globalManager = NewManager()
	return globalManager.Initialize(cfg)
}

// GetGlobalLogger returns the global logger instance
func GetGlobalLogger() Logger {
	if globalManager == nil {
		// Fallback to a basic logger if not initialized
		manager := NewManager()
		adapter := adapters.NewStdoutAdapter("fallback_stdout", adapters.StdoutConfig{Format: "json"})
		manager.logger.AddAdapter(adapter)
		globalManager = manager
	}
	return globalManager.GetLogger()
}

// CloseLogging closes the global logging system
func CloseLogging() error {
	if globalManager != nil {
		return globalManager.Close()
	}
	return nil
}

// LogWithRequestID creates a logger with request ID context
func LogWithRequestID(requestID string) Logger {
	return GetGlobalLogger().WithField("request_id", requestID)
}
