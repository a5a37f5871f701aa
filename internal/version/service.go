// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"sync"
	"time"

	"go.uber.org/zap"

	"trac.io/trac/internal/sync2"
)

// Config contains the necessary information to check the software version.
type Config struct {
	ServerAddress  string        `help:"server address to check its version against" default:"https://version.trac.io"`
	RequestTimeout time.Duration `help:"request timeout for version checks" default:"0h1m0s"`
	CheckInterval  time.Duration `help:"interval to check the version" default:"0h15m0s"`
}

// Service periodically checks the running version against the version
// control server and refuses to operate on outdated release builds.
type Service struct {
	log     *zap.Logger
	config  Config
	info    Info
	service string

	Loop *sync2.Cycle

	checked sync2.Fence
	mu      sync.Mutex
	allowed bool
}

// NewService creates a version check service with the given configuration.
func NewService(log *zap.Logger, config Config, info Info, service string) *Service {
	// a zero interval would panic the cycle ticker
	interval := config.CheckInterval
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &Service{
		log:     log,
		config:  config,
		info:    info,
		service: service,
		Loop:    sync2.NewCycle(interval),
		allowed: true,
	}
}

// CheckVersion checks to make sure the version is still okay, returning an error when not.
func (service *Service) CheckVersion(ctx context.Context) (err error) {
	defer mon.Task()(&ctx)(&err)
	if !service.checkVersion(ctx) {
		return fmt.Errorf("outdated software version (%v), please update", service.info.Version.String())
	}
	return nil
}

// CheckProcessVersion is not meant to be used for peers but is meant to be
// used for other utilities.
func CheckProcessVersion(ctx context.Context, log *zap.Logger, config Config, info Info, service string) (err error) {
	defer mon.Task()(&ctx)(&err)
	return NewService(log, config, info, service).CheckVersion(ctx)
}

// Run logs the current version information and kicks off the periodic check.
func (service *Service) Run(ctx context.Context) (err error) {
	defer mon.Task()(&ctx)(&err)
	if !service.checked.Released() {
		err := service.CheckVersion(ctx)
		if err != nil {
			return err
		}
	}
	return service.Loop.Run(ctx, func(ctx context.Context) error {
		service.checkVersion(ctx)
		return nil
	})
}

// Close stops the periodic check.
func (service *Service) Close() error {
	service.Loop.Close()
	return nil
}

// IsAllowed returns whether the service is allowed to operate.
func (service *Service) IsAllowed() bool {
	service.checked.Wait()
	service.mu.Lock()
	defer service.mu.Unlock()
	return service.allowed
}

// checkVersion checks if the client is running latest/allowed code.
func (service *Service) checkVersion(ctx context.Context) (allowed bool) {
	defer mon.Task()(&ctx)(nil)

	defer func() {
		service.mu.Lock()
		service.allowed = allowed
		service.mu.Unlock()
		service.checked.Release()
	}()

	if !service.info.Release {
		return true
	}

	accepted, err := service.queryVersionFromControlServer(ctx)
	if err != nil {
		// Log about the error, but dont crash the service and allow further operation
		service.log.Sugar().Errorf("Failed to do periodic version check: %s", err.Error())
		return true
	}

	minimum := getFieldString(&accepted, service.service)
	service.log.Sugar().Debugf("allowed minimum version from control server is: %s", minimum.String())

	if minimum.IsZero() {
		service.log.Sugar().Errorf("no version from control server, accepting to run")
		return true
	}
	if service.info.Version.Compare(minimum) >= 0 {
		service.log.Sugar().Infof("running on version %s", service.info.Version.String())
		return true
	}
	service.log.Sugar().Errorf("running on not allowed/outdated version %s", service.info.Version.String())
	return false
}

// queryVersionFromControlServer handles the HTTP request to gather the
// allowed and latest version information.
func (service *Service) queryVersionFromControlServer(ctx context.Context) (ver AllowedVersions, err error) {
	defer mon.Task()(&ctx)(&err)

	// Tune Client to have a custom Timeout (reduces hanging software)
	client := http.Client{
		Timeout: service.config.RequestTimeout,
	}

	req, err := http.NewRequest("GET", service.config.ServerAddress, nil)
	if err != nil {
		return AllowedVersions{}, Error.Wrap(err)
	}
	req = req.WithContext(ctx)

	resp, err := client.Do(req)
	if err != nil {
		return AllowedVersions{}, Error.Wrap(err)
	}
	defer func() { _ = resp.Body.Close() }()

	err = json.NewDecoder(resp.Body).Decode(&ver)
	return ver, Error.Wrap(err)
}

// DebugHandler implements the version info endpoint.
type DebugHandler struct {
	log *zap.Logger
}

// NewDebugHandler returns new debug handler.
func NewDebugHandler(log *zap.Logger) *DebugHandler {
	return &DebugHandler{log}
}

// ServeHTTP returns a json representation of the current version information for the binary.
func (server *DebugHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	j, err := Build.Marshal()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	_, err = w.Write(append(j, '\n'))
	if err != nil {
		server.log.Sugar().Errorf("error writing data to client %v", err)
	}
}

func getFieldString(versions *AllowedVersions, field string) SemVer {
	r := reflect.ValueOf(versions)
	f := reflect.Indirect(r).FieldByName(field).Interface()
	result, ok := f.(SemVer)
	if ok {
		return result
	}
	return SemVer{}
}
