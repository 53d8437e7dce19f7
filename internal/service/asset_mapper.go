package service

import (
	"sort"
	"strings"

	"treasury-core/internal/core/domain"
)

// ChainNetwork ties a CAIP-2 blockchain key to the exchange's network symbol
// for that chain, plus any human-readable aliases accepted in lookups.
type ChainNetwork struct {
	BlockchainKey string
	Network       string
	Aliases       []string
}

// AssetMapperImpl implements ports.AssetMapper over a static mapping table.
// Chain-specific identifiers of the same fungible asset (USDT on three
// chains) collapse to one asset symbol for exchange-custody accounting.
type AssetMapperImpl struct {
	byToken        map[string]domain.AssetMapping
	networkByChain map[string]string
	chainsByAsset  map[string][]string
}

// NewAssetMapper builds a mapper from the configured tables.
func NewAssetMapper(mappings []domain.AssetMapping, networks []ChainNetwork) *AssetMapperImpl {
	m := &AssetMapperImpl{
		byToken:        make(map[string]domain.AssetMapping, len(mappings)),
		networkByChain: make(map[string]string, len(networks)),
		chainsByAsset:  make(map[string][]string),
	}
	for _, n := range networks {
		m.networkByChain[n.BlockchainKey] = n.Network
		for _, alias := range n.Aliases {
			m.networkByChain[alias] = n.Network
		}
	}
	for _, am := range mappings {
		m.byToken[am.TokenID] = am
		chain := tokenChain(am.TokenID)
		m.chainsByAsset[am.Asset] = append(m.chainsByAsset[am.Asset], chain)
	}
	return m
}

// DefaultAssetMappings covers USDT across its three custody chains plus the
// native coins the platform holds.
func DefaultAssetMappings() []domain.AssetMapping {
	return []domain.AssetMapping{
		{TokenID: "eip155:1/erc20:0xdac17f958d2ee523a2206206994597c13d831ec7", Asset: "USDT", Network: "ERC20"},
		{TokenID: "tron:mainnet/trc20:TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t", Asset: "USDT", Network: "TRC20"},
		{TokenID: "eip155:56/bep20:0x55d398326f99059ff775485246999027b3197955", Asset: "USDT", Network: "BEP20"},
		{TokenID: "eip155:1/slip44:60", Asset: "ETH", Network: "ERC20"},
		{TokenID: "bip122:000000000019d6689c085ae165831e93/slip44:0", Asset: "BTC", Network: "BTC"},
	}
}

// DefaultChainNetworks maps the supported chains to exchange network symbols.
func DefaultChainNetworks() []ChainNetwork {
	return []ChainNetwork{
		{BlockchainKey: "eip155:1", Network: "ERC20", Aliases: []string{"ethereum", "eth"}},
		{BlockchainKey: "tron:mainnet", Network: "TRC20", Aliases: []string{"tron", "trx"}},
		{BlockchainKey: "eip155:56", Network: "BEP20", Aliases: []string{"bsc", "binance-smart-chain"}},
		{BlockchainKey: "bip122:000000000019d6689c085ae165831e93", Network: "BTC", Aliases: []string{"bitcoin", "btc"}},
	}
}

// TokenToAsset resolves a chain-specific token to its canonical asset and
// exchange network.
func (m *AssetMapperImpl) TokenToAsset(tokenID string) (string, string, bool) {
	am, ok := m.byToken[tokenID]
	if !ok {
		return "", "", false
	}
	return am.Asset, am.Network, true
}

// BlockchainKeyToNetwork resolves a chain key or alias to the exchange
// network symbol.
func (m *AssetMapperImpl) BlockchainKeyToNetwork(blockchainKey string) (string, bool) {
	network, ok := m.networkByChain[blockchainKey]
	return network, ok
}

// IsSupported reports whether the token is in the mapping table.
func (m *AssetMapperImpl) IsSupported(tokenID string) bool {
	_, ok := m.byToken[tokenID]
	return ok
}

// SupportedTokens returns the mapped token identifiers, sorted.
func (m *AssetMapperImpl) SupportedTokens() []string {
	tokens := make([]string, 0, len(m.byToken))
	for t := range m.byToken {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)
	return tokens
}

// ChainsForAsset returns the blockchain keys holding the asset.
func (m *AssetMapperImpl) ChainsForAsset(asset string) []string {
	return m.chainsByAsset[asset]
}

// tokenChain extracts the CAIP-2 chain key from a CAIP-19 token identifier.
func tokenChain(tokenID string) string {
	if idx := strings.Index(tokenID, "/"); idx > 0 {
		return tokenID[:idx]
	}
	return tokenID
}
