package ingest

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/transit-tools/fare-resolver/config"
	"github.com/transit-tools/fare-resolver/fare"
)

// LoadSource fetches and parses a configured fare-table source plus its
// optional alias table. The returned label identifies the source in the
// build summary.
func LoadSource(src config.SourceConfig) ([]fare.RawRow, []fare.AliasRow, string, error) {
	data, label, err := fetch(src.Path, src.URL)
	if err != nil {
		return nil, nil, "", err
	}
	rows, err := ParseDelimited(bytes.NewReader(data))
	if err != nil {
		return nil, nil, "", err
	}
	if src.Name != "" {
		label = src.Name
	}

	var aliasRows []fare.AliasRow
	if src.AliasPath != "" || src.AliasURL != "" {
		aliasData, _, err := fetch(src.AliasPath, src.AliasURL)
		if err != nil {
			// The alias table is optional; the fare table stands on its own.
			return rows, nil, label, nil
		}
		rawAlias, err := ParseDelimited(bytes.NewReader(aliasData))
		if err == nil {
			aliasRows = ParseAliasRows(rawAlias)
		}
	}
	return rows, aliasRows, label, nil
}

func fetch(path, url string) ([]byte, string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", err
		}
		return data, path, nil
	}
	if url != "" {
		resp, err := http.Get(url)
		if err != nil {
			return nil, "", err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, "", fmt.Errorf("ingest: fetch %s: status %d", url, resp.StatusCode)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, "", err
		}
		return data, url, nil
	}
	return nil, "", fmt.Errorf("ingest: source has neither path nor url")
}
