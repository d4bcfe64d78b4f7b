// internal/intel/registry.go

package intel

// builtinProjects is the default registry of well-known crypto projects.
func builtinProjects() []Project {
	return []Project{
		{
			ID: "bitcoin", Name: "Bitcoin", Symbol: "BTC", Handle: "Bitcoin",
			Hashtags: []string{"#Bitcoin", "#BTC"}, Category: CategoryBlockchain,
			Aliases: []string{"btc", "satoshi"},
		},
		{
			ID: "ethereum", Name: "Ethereum", Symbol: "ETH", Handle: "ethereum",
			Hashtags: []string{"#Ethereum", "#ETH"}, Category: CategoryBlockchain,
			Aliases: []string{"eth", "ether"},
		},
		{
			ID: "solana", Name: "Solana", Symbol: "SOL", Handle: "solana",
			Hashtags: []string{"#Solana", "#SOL"}, Category: CategoryBlockchain,
			Aliases: []string{"sol"},
		},
		{
			ID: "base", Name: "Base", Symbol: "BASE", Handle: "base",
			Hashtags: []string{"#Base", "#Onchain"}, Category: CategoryBlockchain,
			Aliases: []string{"base chain"},
		},
		{
			ID: "arbitrum", Name: "Arbitrum", Symbol: "ARB", Handle: "arbitrum",
			Hashtags: []string{"#Arbitrum", "#ARB"}, Category: CategoryInfrastructure,
			Aliases: []string{"arb"},
		},
		{
			ID: "uniswap", Name: "Uniswap", Symbol: "UNI", Handle: "Uniswap",
			Hashtags: []string{"#Uniswap", "#DeFi"}, Category: CategoryDeFi,
			Aliases: []string{"uni"},
		},
		{
			ID: "aave", Name: "Aave", Symbol: "AAVE", Handle: "aave",
			Hashtags: []string{"#Aave", "#DeFi"}, Category: CategoryDeFi,
		},
		{
			ID: "chainlink", Name: "Chainlink", Symbol: "LINK", Handle: "chainlink",
			Hashtags: []string{"#Chainlink", "#LINK"}, Category: CategoryInfrastructure,
			Aliases: []string{"link"},
		},
		{
			ID: "dogecoin", Name: "Dogecoin", Symbol: "DOGE", Handle: "dogecoin",
			Hashtags: []string{"#Dogecoin", "#DOGE"}, Category: CategoryMeme,
			Aliases: []string{"doge"},
		},
		{
			ID: "pepe", Name: "Pepe", Symbol: "PEPE", Handle: "pepecoineth",
			Hashtags: []string{"#PEPE"}, Category: CategoryMeme,
		},
		{
			ID: "coinbase", Name: "Coinbase", Symbol: "COIN", Handle: "coinbase",
			Hashtags: []string{"#Coinbase"}, Category: CategoryExchange,
		},
		{
			ID: "binance", Name: "Binance", Symbol: "BNB", Handle: "binance",
			Hashtags: []string{"#Binance", "#BNB"}, Category: CategoryExchange,
			Aliases: []string{"bnb"},
		},
		{
			ID: "bittensor", Name: "Bittensor", Symbol: "TAO", Handle: "bittensor_",
			Hashtags: []string{"#Bittensor", "#TAO"}, Category: CategoryAI,
			Aliases: []string{"tao"},
		},
		{
			ID: "opensea", Name: "OpenSea", Symbol: "", Handle: "opensea",
			Hashtags: []string{"#NFT", "#OpenSea"}, Category: CategoryNFT,
		},
	}
}
