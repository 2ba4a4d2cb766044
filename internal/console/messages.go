package console

// Menu is printed before every selector prompt.
const Menu = `Welcome to the Personal Finance Manager
1. Add Income
2. Add Expense
3. Show Balance
4. Show Transactions
0. Exit
`

const (
	PromptChoice             = "Enter your choice: "
	PromptIncomeSource       = "Enter income source: "
	PromptIncomeAmount       = "Enter income amount: "
	PromptExpenseDescription = "Enter expense description: "
	PromptExpenseAmount      = "Enter expense amount: "
)

const (
	MsgCurrentBalance      = "Current balance:"
	MsgTransactionsHeader  = "Your transactions:"
	MsgNoTransactions      = "No transactions yet."
	MsgInsufficientBalance = "Not enough balance for this expense!"
	MsgInvalidChoice       = "Invalid choice, please try again."
	MsgInvalidAmount       = "Invalid amount, please enter a non-negative number."
	MsgEmptyLabel          = "Description must not be empty."
	MsgLineTooLong         = "Input too long, please try again."
)
