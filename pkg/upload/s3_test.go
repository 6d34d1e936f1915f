package upload

import "testing"

func TestConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("S3_REGION", "")
	t.Setenv("S3_ENDPOINT", "")
	t.Setenv("S3_ACCESS_KEY", "")
	t.Setenv("S3_SECRET_KEY", "")

	cfg := ConfigFromEnv("renders")
	if cfg.Bucket != "renders" {
		t.Errorf("Expected bucket renders, got %q", cfg.Bucket)
	}
	if cfg.Region != "us-east-1" {
		t.Errorf("Expected default region us-east-1, got %q", cfg.Region)
	}
}

func TestConfigFromEnv_ReadsEnvironment(t *testing.T) {
	t.Setenv("S3_REGION", "eu-north-1")
	t.Setenv("S3_ENDPOINT", "https://storage.example.com")
	t.Setenv("S3_ACCESS_KEY", "key")
	t.Setenv("S3_SECRET_KEY", "secret")

	cfg := ConfigFromEnv("renders")
	if cfg.Region != "eu-north-1" || cfg.Endpoint != "https://storage.example.com" {
		t.Errorf("Expected env values, got %+v", cfg)
	}
}

func TestNewUploader_RequiresBucket(t *testing.T) {
	if _, err := NewUploader(Config{}); err == nil {
		t.Fatal("Expected error for missing bucket")
	}
}

func TestNewUploader_Succeeds(t *testing.T) {
	u, err := NewUploader(Config{
		Bucket:    "renders",
		Region:    "us-east-1",
		AccessKey: "key",
		SecretKey: "secret",
	})
	if err != nil {
		t.Fatalf("NewUploader failed: %v", err)
	}
	if u.bucket != "renders" {
		t.Errorf("Expected bucket renders, got %q", u.bucket)
	}
}
