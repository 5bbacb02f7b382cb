package config

import "testing"

func TestValidateRejectsOutOfRangeMasterRatio(t *testing.T) {
	cfg := &Config{}
	cfg.Tiling.Master.Ratio = 5
	if err := validate(cfg); err == nil {
		t.Fatal("expected error for ratio below 10")
	}
}

func TestValidateRejectsDuplicateWorkspaceNames(t *testing.T) {
	cfg := &Config{}
	cfg.Tiling.Workspaces = []WorkspaceSpec{
		{Name: "main", Layout: "dwindle"},
		{Name: "main", Layout: "grid"},
	}
	if err := validate(cfg); err == nil {
		t.Fatal("expected error for duplicate workspace name")
	}
}

func TestValidateRejectsUnknownLayoutTag(t *testing.T) {
	cfg := &Config{}
	cfg.Tiling.Workspaces = []WorkspaceSpec{{Name: "main", Layout: "not_a_layout"}}
	if err := validate(cfg); err == nil {
		t.Fatal("expected error for unknown layout tag")
	}
}

func TestMasterRatioClampedToTenNinetyFraction(t *testing.T) {
	cfg := Config{}
	cfg.Tiling.Master.Ratio = 0
	if got := cfg.MasterRatio(); got != 0.1 {
		t.Fatalf("expected 0.1, got %v", got)
	}
	cfg.Tiling.Master.Ratio = 60
	if got := cfg.MasterRatio(); got != 0.6 {
		t.Fatalf("expected 0.6, got %v", got)
	}
}
