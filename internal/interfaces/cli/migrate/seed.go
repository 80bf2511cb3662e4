package migrate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/retain-hq/retain/internal/domain/saveflow"
	"github.com/retain-hq/retain/internal/domain/sellingplan"
	vo "github.com/retain-hq/retain/internal/domain/subscription/valueobjects"
	"github.com/retain-hq/retain/internal/domain/tenant"
	"github.com/retain-hq/retain/internal/infrastructure/database"
	"github.com/retain-hq/retain/internal/infrastructure/repository"
	"github.com/retain-hq/retain/internal/shared/logger"
)

var seedFile string

// seedFixture mirrors the YAML shape of configs/seed.yaml. Save-flow steps
// and offers reuse the domain JSON tags, so a fixture entry looks exactly
// like the stored trigger_conditions/steps/offers blobs.
type seedFixture struct {
	Tenants []struct {
		Slug         string `yaml:"slug"`
		Name         string `yaml:"name"`
		SellingPlans []struct {
			Name          string   `yaml:"name"`
			Frequency     string   `yaml:"frequency"`
			Interval      int      `yaml:"interval"`
			DiscountType  string   `yaml:"discount_type"`
			DiscountValue int64    `yaml:"discount_value"`
			ProductIDs    []string `yaml:"product_ids"`
		} `yaml:"selling_plans"`
		SaveFlows []struct {
			Name     string `yaml:"name"`
			Priority int    `yaml:"priority"`
			// Trigger, steps and offers are decoded generically and then
			// re-read through the domain JSON codecs, which carry the
			// union validation the yaml tags cannot express.
			Trigger map[string]any   `yaml:"trigger"`
			Steps   []map[string]any `yaml:"steps"`
			Offers  []map[string]any `yaml:"offers"`
		} `yaml:"save_flows"`
	} `yaml:"tenants"`
}

func newSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load tenants, selling plans and save flows from a YAML fixture",
		RunE:  runSeed,
	}

	cmd.Flags().StringVarP(&seedFile, "file", "f", "./configs/seed.yaml", "Path to the seed fixture")

	return cmd
}

func runSeed(cmd *cobra.Command, args []string) error {
	_, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	raw, err := os.ReadFile(seedFile)
	if err != nil {
		return fmt.Errorf("failed to read seed fixture: %w", err)
	}

	var fixture seedFixture
	if err := yaml.Unmarshal(raw, &fixture); err != nil {
		return fmt.Errorf("failed to decode seed fixture: %w", err)
	}

	ctx := context.Background()
	if err := applySeed(ctx, fixture, log); err != nil {
		return err
	}

	log.Infow("seed completed", "file", seedFile, "tenants", len(fixture.Tenants))
	return nil
}

func applySeed(ctx context.Context, fixture seedFixture, log logger.Interface) error {
	gdb := database.Get()
	tenants := repository.NewTenantRepository(gdb, log)
	plans := repository.NewSellingPlanRepository(gdb, log)
	flows := repository.NewSaveFlowRepository(gdb, log)

	for _, entry := range fixture.Tenants {
		existing, err := tenants.GetBySlug(ctx, entry.Slug)
		if err != nil && !errors.Is(err, tenant.ErrTenantNotFound) {
			return fmt.Errorf("failed to look up tenant %q: %w", entry.Slug, err)
		}
		if existing == nil {
			existing = &tenant.Tenant{Slug: entry.Slug, Name: entry.Name, Active: true}
			if err := tenants.Create(ctx, existing); err != nil {
				return fmt.Errorf("failed to create tenant %q: %w", entry.Slug, err)
			}
		} else {
			log.Infow("tenant already present, seeding into it", "slug", entry.Slug)
		}

		for _, p := range entry.SellingPlans {
			frequency, err := vo.ParseFrequency(p.Frequency)
			if err != nil {
				return fmt.Errorf("selling plan %q: %w", p.Name, err)
			}
			plan, err := sellingplan.NewSellingPlan(existing.ID, p.Name, frequency, p.Interval, sellingplan.DiscountType(p.DiscountType), p.DiscountValue)
			if err != nil {
				return fmt.Errorf("selling plan %q: %w", p.Name, err)
			}
			plan.SetProductIDs(p.ProductIDs)
			if err := plans.Create(ctx, plan); err != nil {
				return fmt.Errorf("failed to create selling plan %q: %w", p.Name, err)
			}
		}

		for _, f := range entry.SaveFlows {
			var trigger saveflow.TriggerConditions
			if err := reencode(f.Trigger, &trigger); err != nil {
				return fmt.Errorf("save flow %q trigger: %w", f.Name, err)
			}
			var steps saveflow.StepList
			if err := reencode(f.Steps, &steps); err != nil {
				return fmt.Errorf("save flow %q steps: %w", f.Name, err)
			}
			var offers saveflow.OfferList
			if err := reencode(f.Offers, &offers); err != nil {
				return fmt.Errorf("save flow %q offers: %w", f.Name, err)
			}

			flow, err := saveflow.NewSaveFlow(existing.ID, f.Name, f.Priority, trigger, steps, offers)
			if err != nil {
				return fmt.Errorf("save flow %q: %w", f.Name, err)
			}
			if err := flows.Create(ctx, flow); err != nil {
				return fmt.Errorf("failed to create save flow %q: %w", f.Name, err)
			}
		}
	}

	return nil
}

func reencode(in, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
