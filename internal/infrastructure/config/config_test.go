package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("LoadWith: %v", err)
	}

	if cfg.Port != "8080" || cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Errorf("unexpected server defaults: %+v", cfg)
	}
	if cfg.JWT.Issuer != "employee-api" || cfg.JWT.Audience != "employee-api-clients" || cfg.JWT.TTL != 24*time.Hour {
		t.Errorf("unexpected jwt defaults: %+v", cfg.JWT)
	}
	if cfg.Mongo.Database != "EmployeeStore" || cfg.Mongo.EmployeesCollection != "Employees" || cfg.Mongo.UsersCollection != "Users" {
		t.Errorf("unexpected mongo defaults: %+v", cfg.Mongo)
	}
	if cfg.Mongo.Timeout != 10*time.Second || cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("unexpected timeouts: mongo=%v shutdown=%v", cfg.Mongo.Timeout, cfg.ShutdownTimeout)
	}
	if cfg.AuditWorkers != 4 {
		t.Errorf("AuditWorkers = %d", cfg.AuditWorkers)
	}
	if !cfg.IsDevelopment() {
		t.Error("expected development env")
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":             "s3cret",
		"PORT":                   "9090",
		"ENV":                    "production",
		"TOKEN_TTL":              "1h",
		"MONGO_USERS_COLLECTION": "Accounts",
		"REDIS_ADDR":             "",
		"REDIS_DB":               "3",
	}))
	if err != nil {
		t.Fatalf("LoadWith: %v", err)
	}
	if cfg.Port != "9090" || cfg.IsDevelopment() {
		t.Errorf("unexpected server config: %+v", cfg)
	}
	if cfg.JWT.TTL != time.Hour {
		t.Errorf("TTL = %v", cfg.JWT.TTL)
	}
	if cfg.Mongo.UsersCollection != "Accounts" {
		t.Errorf("UsersCollection = %q", cfg.Mongo.UsersCollection)
	}
	if cfg.Redis.Addr != "" || cfg.Redis.DB != 3 {
		t.Errorf("unexpected redis config: %+v", cfg.Redis)
	}
}

func TestLoadWith_MissingSecret(t *testing.T) {
	if _, err := LoadWith(context.Background(), envconfig.MapLookuper(nil)); err == nil {
		t.Fatal("expected error when JWT_SECRET is unset")
	}
}
