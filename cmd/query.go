package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"explorer/internal/bootstrap"
	domainexplorer "explorer/internal/domain/explorer"
	"explorer/internal/errs"
	"explorer/internal/ports"
	"explorer/internal/transport/httpapi"
	"explorer/internal/usecase/explorer"
)

var queryKinds = []string{"addresses", "assets", "cases", "reporters", "networks"}

var queryCmd = &cobra.Command{
	Use:       "query <addresses|assets|cases|reporters|networks> [id]",
	Short:     "List entities of one kind, or show one by id",
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: queryKinds,
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *explorer.Service) error {
		args := cmd.Flags().Args()
		if len(args) == 2 {
			return runGet(cmd, svc, args[0], args[1])
		}
		return runQuery(cmd, svc, args[0])
	}),
}

func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().StringArray("where", nil, "Filter as field=value, repeatable (e.g. --where network=Ethereum --where category=Scam)")
	cmd.Flags().String("order-by", "", "Sort field (default id)")
	cmd.Flags().String("ordering", "asc", "asc or desc")
	cmd.Flags().Int("page", domainexplorer.DefaultPageNum, "Page number, starting at 1")
	cmd.Flags().Int("page-size", domainexplorer.DefaultPageSize, "Page size")
	cmd.Flags().Bool("json", false, "Print the page as JSON")
}

// queryValues turns the query flags into the same parameters the HTTP listing endpoints take.
func queryValues(cmd *cobra.Command) (url.Values, error) {
	q := url.Values{}
	where, _ := cmd.Flags().GetStringArray("where")
	for _, w := range where {
		key, value, ok := strings.Cut(w, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("--where %q: want field=value", w)
		}
		q.Set(strings.TrimSpace(key), value)
	}

	orderBy, _ := cmd.Flags().GetString("order-by")
	ordering, _ := cmd.Flags().GetString("ordering")
	page, _ := cmd.Flags().GetInt("page")
	pageSize, _ := cmd.Flags().GetInt("page-size")
	if orderBy != "" {
		q.Set("order_by", orderBy)
	}
	q.Set("ordering", ordering)
	q.Set("page_num", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))
	return q, nil
}

func runQuery(cmd *cobra.Command, svc *explorer.Service, kind string) error {
	q, err := queryValues(cmd)
	if err != nil {
		return err
	}
	asJSON, _ := cmd.Flags().GetBool("json")
	page, _ := strconv.Atoi(q.Get("page_num"))

	switch kind {
	case "addresses", "address":
		return listAndRender(cmd, q, page, asJSON, httpapi.ParseAddressInput, svc.ListAddresses, addressTable)
	case "assets", "asset":
		return listAndRender(cmd, q, page, asJSON, httpapi.ParseAssetInput, svc.ListAssets, assetTable)
	case "cases", "case":
		return listAndRender(cmd, q, page, asJSON, httpapi.ParseCaseInput, svc.ListCases, caseTable)
	case "reporters", "reporter":
		return listAndRender(cmd, q, page, asJSON, httpapi.ParseReporterInput, svc.ListReporters, reporterTable)
	case "networks", "network":
		return listAndRender(cmd, q, page, asJSON, httpapi.ParseNetworkInput, svc.ListNetworks, networkTable)
	default:
		return fmt.Errorf("unknown kind %q, want one of %s", kind, strings.Join(queryKinds, ", "))
	}
}

func listAndRender[F any, C ~string, R any](
	cmd *cobra.Command,
	q url.Values,
	pageNum int,
	asJSON bool,
	parse func(url.Values) (domainexplorer.EntityInput[F, C], error),
	list func(context.Context, domainexplorer.EntityInput[F, C]) (domainexplorer.EntityPage[R], error),
	render func([]R) ([]string, [][]string),
) error {
	input, err := parse(q)
	if err != nil {
		return err
	}
	page, err := list(cmd.Context(), input)
	if err != nil {
		return errs.Wrap(err, "query")
	}

	if asJSON {
		return writeJSON(cmd, page)
	}
	headers, rows := render(page.Data)
	if err := renderTable(cmd.OutOrStdout(), headers, rows); err != nil {
		return err
	}
	return renderFooter(cmd.OutOrStdout(), pageNum, page.PageCount, page.Total)
}

func runGet(cmd *cobra.Command, svc *explorer.Service, kind string, id string) error {
	ctx := cmd.Context()
	var record any
	var err error
	switch kind {
	case "addresses", "address":
		record, err = svc.GetAddress(ctx, id)
	case "assets", "asset":
		record, err = svc.GetAsset(ctx, id)
	case "cases", "case":
		record, err = svc.GetCase(ctx, id)
	case "reporters", "reporter":
		record, err = svc.GetReporter(ctx, id)
	case "networks", "network":
		record, err = svc.GetNetwork(ctx, id)
	default:
		return fmt.Errorf("unknown kind %q, want one of %s", kind, strings.Join(queryKinds, ", "))
	}
	if err != nil {
		return errs.Wrapf(err, "get %s", id)
	}
	return writeJSON(cmd, record)
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errs.Wrap(err, "write json")
	}
	return nil
}

func addressTable(data []ports.AddressRecord) ([]string, [][]string) {
	rows := make([][]string, 0, len(data))
	for _, a := range data {
		rows = append(rows, []string{a.ID, a.Category.String(), itoa(a.Risk), a.CaseID.String(), a.Confirmations, formatTime(a.UpdatedAt)})
	}
	return []string{"ID", "CATEGORY", "RISK", "CASE", "CONFIRMATIONS", "UPDATED"}, rows
}

func assetTable(data []ports.AssetRecord) ([]string, [][]string) {
	rows := make([][]string, 0, len(data))
	for _, a := range data {
		rows = append(rows, []string{a.ID, a.Category.String(), itoa(a.Risk), a.CaseID.String(), a.Confirmations, formatTime(a.UpdatedAt)})
	}
	return []string{"ID", "CATEGORY", "RISK", "CASE", "CONFIRMATIONS", "UPDATED"}, rows
}

func caseTable(data []ports.CaseRecord) ([]string, [][]string) {
	rows := make([][]string, 0, len(data))
	for _, c := range data {
		rows = append(rows, []string{c.ID, c.Name, c.Status.String(), c.ReporterID.String(), c.URL})
	}
	return []string{"ID", "NAME", "STATUS", "REPORTER", "URL"}, rows
}

func reporterTable(data []ports.ReporterRecord) ([]string, [][]string) {
	rows := make([][]string, 0, len(data))
	for _, r := range data {
		rows = append(rows, []string{r.ID, r.Account, r.Name, r.Role.String(), r.Status.String(), r.Stake})
	}
	return []string{"ID", "ACCOUNT", "NAME", "ROLE", "STATUS", "STAKE"}, rows
}

func networkTable(data []ports.NetworkRecord) ([]string, [][]string) {
	rows := make([][]string, 0, len(data))
	for _, n := range data {
		chainID := ""
		if n.ChainID != nil {
			chainID = *n.ChainID
		}
		rows = append(rows, []string{n.ID, n.Name, n.Backend.String(), chainID, n.Authority, n.StakeToken})
	}
	return []string{"ID", "NAME", "BACKEND", "CHAIN ID", "AUTHORITY", "STAKE TOKEN"}, rows
}

func init() {
	rootCmd.AddCommand(queryCmd)
	addQueryFlags(queryCmd)
}
