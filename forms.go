package main

import (
	"fmt"
	"strconv"
	"strings"

	"memory-nft-tui/nft"
	"memory-nft-tui/sui"

	"github.com/charmbracelet/huh"
)

// -------------------- TEMP FORM STORAGE --------------------
// Temporary form field storage (package-level to avoid pointer-to-copy issues)
var (
	tempRarity          string
	tempRPCFormName     string
	tempRPCFormURL      string
	tempNicknameField   string
	tempDeploymentName  string
	tempDeploymentNet   string
	tempDeploymentPkg   string
	tempDeploymentStore string
)

// createOperationForm opens the input form of h, bound to its FormInput.
// Fields are only checked on submit so every problem is reported at once.
func (m *model) createOperationForm(h *nft.Handler) {
	var fields []huh.Field
	f := &h.Form

	switch h.Kind {
	case nft.OpAddTemplate:
		tempRarity = strconv.Itoa(f.Rarity)
		fields = []huh.Field{
			huh.NewInput().Title("Title").Value(&f.Title).Placeholder("Summer 2024"),
			huh.NewText().Title("Description").Value(&f.Description).Lines(3),
			huh.NewInput().Title("Image URL").Value(&f.ImageURL).Placeholder("https://..."),
			huh.NewInput().Title("Rarity").Description("1 (common) to 5 (legendary)").Value(&tempRarity).CharLimit(3),
		}
	case nft.OpMintIntroduction:
		fields = []huh.Field{
			huh.NewInput().Title("Name").Value(&f.Name),
			huh.NewText().Title("Description").Value(&f.Description).Lines(3),
			huh.NewInput().Title("Image URL").Value(&f.ImageURL).Placeholder("https://..."),
			huh.NewInput().Title("Slogan").Value(&f.Slogan),
		}
	default:
		return
	}

	m.formHandler = h
	m.form = huh.NewForm(huh.NewGroup(fields...).Title(h.Kind.Title())).
		WithTheme(huh.ThemeCatppuccin())
	m.form.Init()
}

// applyRarity copies the rarity text into the open handler's form.
// Anything that is not a number becomes 0 and fails validation.
func applyRarity(h *nft.Handler) {
	if h.Kind != nft.OpAddTemplate {
		return
	}
	r, err := strconv.Atoi(strings.TrimSpace(tempRarity))
	if err != nil {
		r = 0
	}
	h.Form.Rarity = r
}

func (m *model) createAddRPCForm() {
	tempRPCFormName = ""
	tempRPCFormURL = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("RPC Name").
				Description("A friendly name for this fullnode").
				Value(&tempRPCFormName).
				Placeholder("Sui Devnet"),

			huh.NewInput().
				Title("RPC URL").
				Description("The complete fullnode URL (https://...)").
				Value(&tempRPCFormURL).
				Placeholder("https://fullnode.devnet.sui.io:443").
				Validate(requireURL),
		),
	).WithTheme(huh.ThemeCatppuccin())
	m.form.Init()
}

func (m *model) createEditRPCForm(idx int) {
	if idx < 0 || idx >= len(m.cfg.RPCURLs) {
		return
	}

	rpc := m.cfg.RPCURLs[idx]
	tempRPCFormName = rpc.Name
	tempRPCFormURL = rpc.URL

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("RPC Name").
				Value(&tempRPCFormName),

			huh.NewInput().
				Title("RPC URL").
				Value(&tempRPCFormURL).
				Validate(requireURL),
		),
	).WithTheme(huh.ThemeCatppuccin())
	m.form.Init()
}

func (m *model) createNicknameForm(addr string) {
	tempNicknameField = m.cfg.IdentityName(addr)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Nickname").
				Description("Shown next to " + addr).
				Value(&tempNicknameField).
				Placeholder("Optional nickname").
				CharLimit(50),
		),
	).WithTheme(huh.ThemeCatppuccin())
	m.form.Init()
}

func (m *model) createDeploymentForm(idx int) {
	tempDeploymentName, tempDeploymentNet, tempDeploymentPkg, tempDeploymentStore = "", "testnet", "", ""
	if idx >= 0 && idx < len(m.cfg.Deployments) {
		d := m.cfg.Deployments[idx]
		tempDeploymentName, tempDeploymentNet = d.Name, d.Network
		tempDeploymentPkg, tempDeploymentStore = d.PackageID, d.TemplateStoreID
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&tempDeploymentName).
				Validate(requireText),

			huh.NewSelect[string]().
				Title("Network").
				Options(huh.NewOptions("mainnet", "testnet", "devnet", "localnet")...).
				Value(&tempDeploymentNet),

			huh.NewInput().
				Title("Package ID").
				Description("Published package containing my_nft_collection").
				Value(&tempDeploymentPkg).
				Placeholder("0x...").
				Validate(requireObjectID),

			huh.NewInput().
				Title("Template Store ID").
				Description("Shared object holding memory templates").
				Value(&tempDeploymentStore).
				Placeholder("0x...").
				Validate(requireObjectID),
		),
	).WithTheme(huh.ThemeCatppuccin())
	m.form.Init()
}

func requireText(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func requireURL(s string) error {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return fmt.Errorf("must start with http:// or https://")
	}
	return nil
}

func requireObjectID(s string) error {
	if !sui.IsValidAddress(strings.TrimSpace(s)) {
		return fmt.Errorf("invalid Sui object ID")
	}
	return nil
}
