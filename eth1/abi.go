package eth1

// Minimal ABI fragments for the read-only calls the checker performs. Full
// contract ABIs can be supplied with WithLidoABI / WithRegistryABI when
// auditing a custom deployment.

const lidoABI = `[
	{
		"constant": true,
		"inputs": [],
		"name": "getWithdrawalCredentials",
		"outputs": [{"name": "", "type": "bytes32"}],
		"payable": false,
		"stateMutability": "view",
		"type": "function"
	}
]`

const registryABI = `[
	{
		"constant": true,
		"inputs": [],
		"name": "getNodeOperatorsCount",
		"outputs": [{"name": "", "type": "uint256"}],
		"payable": false,
		"stateMutability": "view",
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [
			{"name": "_id", "type": "uint256"},
			{"name": "_fullInfo", "type": "bool"}
		],
		"name": "getNodeOperator",
		"outputs": [
			{"name": "active", "type": "bool"},
			{"name": "name", "type": "string"},
			{"name": "rewardAddress", "type": "address"},
			{"name": "stakingLimit", "type": "uint64"},
			{"name": "stoppedValidators", "type": "uint64"},
			{"name": "totalSigningKeys", "type": "uint64"},
			{"name": "usedSigningKeys", "type": "uint64"}
		],
		"payable": false,
		"stateMutability": "view",
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [
			{"name": "_operator_id", "type": "uint256"},
			{"name": "_index", "type": "uint256"}
		],
		"name": "getSigningKey",
		"outputs": [
			{"name": "key", "type": "bytes"},
			{"name": "depositSignature", "type": "bytes"},
			{"name": "used", "type": "bool"}
		],
		"payable": false,
		"stateMutability": "view",
		"type": "function"
	}
]`
