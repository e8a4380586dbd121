package console

import (
	"context"
	"errors"

	"stock-tracker/internal/domain"
	"stock-tracker/internal/repository"
	"stock-tracker/internal/service"

	"go.uber.org/zap"
)

// Menu drives the console flows: the outer register/login loop and the
// role-gated inventory loop. Every operation error is rendered as a message
// and control returns to the menu; a storage failure is fatal to the current
// operation only.
type Menu struct {
	accounts service.AccountService
	catalog  service.CatalogService
	ledger   service.LedgerService
	prompter *Prompter
	logger   *zap.Logger
}

// NewMenu creates a Menu wired to the given services.
func NewMenu(
	accounts service.AccountService,
	catalog service.CatalogService,
	ledger service.LedgerService,
	prompter *Prompter,
	logger *zap.Logger,
) *Menu {
	return &Menu{
		accounts: accounts,
		catalog:  catalog,
		ledger:   ledger,
		prompter: prompter,
		logger:   logger,
	}
}

// Run starts the outer menu loop. It returns when the user chooses Exit or
// the input stream closes.
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.prompter.Printf("\n1. Register\n2. Login\n3. Exit\n")
		choice, err := m.prompter.ReadLine("Enter your choice: ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			m.register(ctx)
		case "2":
			session := m.login(ctx)
			if session != nil {
				if err := m.inventoryLoop(ctx, session); err != nil {
					return err
				}
			}
		case "3":
			m.prompter.Printf("Exiting system. Goodbye!\n")
			return nil
		default:
			m.prompter.Printf("Invalid choice. Kindly select a valid option.\n")
		}
	}
}

func (m *Menu) register(ctx context.Context) {
	m.prompter.Printf("Registration\n")

	input := RegisterInput{}
	var err error
	if input.Username, err = m.prompter.ReadLine("Enter username: "); err != nil {
		return
	}
	if input.Credential, err = m.prompter.ReadLine("Enter password: "); err != nil {
		return
	}
	if input.Role, err = m.prompter.ReadLine("Enter role (admin/staff): "); err != nil {
		return
	}

	if err := ValidateInput(input); err != nil {
		m.printValidationErrors(err)
		return
	}

	_, err = m.accounts.Register(ctx, input.Username, input.Credential, input.Role)
	switch {
	case errors.Is(err, repository.ErrDuplicateUsername):
		m.prompter.Printf("Username exists! Try another one.\n")
	case errors.Is(err, service.ErrInvalidRole):
		m.prompter.Printf("Role must be admin or staff.\n")
	case err != nil:
		m.operationFailed("registration", err)
	default:
		m.logger.Info("Account registered", zap.String("username", input.Username), zap.String("role", input.Role))
		m.prompter.Printf("You registered successfully!\n")
	}
}

func (m *Menu) login(ctx context.Context) *service.Session {
	m.prompter.Printf("LOGIN\n")

	input := LoginInput{}
	var err error
	if input.Username, err = m.prompter.ReadLine("Enter username: "); err != nil {
		return nil
	}
	if input.Credential, err = m.prompter.ReadLine("Enter password: "); err != nil {
		return nil
	}

	if err := ValidateInput(input); err != nil {
		m.printValidationErrors(err)
		return nil
	}

	session, err := m.accounts.Authenticate(ctx, input.Username, input.Credential)
	switch {
	case errors.Is(err, repository.ErrAccountNotFound):
		m.prompter.Printf("Username not found! Kindly register!!\n")
		return nil
	case errors.Is(err, service.ErrInvalidCredential):
		m.prompter.Printf("Invalid password. Try again!\n")
		return nil
	case err != nil:
		m.operationFailed("login", err)
		return nil
	}

	m.logger.Info("Login successful",
		zap.String("session_id", session.ID.String()),
		zap.String("username", session.Username),
		zap.String("role", string(session.Role)),
	)
	m.prompter.Printf("Login successful!\n")
	return session
}

// inventoryLoop runs the role-gated inventory menu until logout. The staff
// menu deliberately keeps Add and Update; the role check itself lives in the
// service layer, so the menu is presentation only.
func (m *Menu) inventoryLoop(ctx context.Context, session *service.Session) error {
	log := m.logger.With(
		zap.String("session_id", session.ID.String()),
		zap.String("username", session.Username),
	)

	for {
		var choice string
		var err error

		if session.Role == domain.RoleAdmin {
			m.prompter.Printf("\n1. Add Product\n2. List Products\n3. Update Product\n4. Delete Product\n5. Record Sale\n6. Record Purchase\n7. Report\n8. Display Users\n9. Logout\n")
			choice, err = m.prompter.ReadLine("Enter your choice: ")
			if err != nil {
				return err
			}

			switch choice {
			case "1":
				m.addProduct(ctx, session, log)
			case "2":
				m.listProducts(ctx)
			case "3":
				m.updateProduct(ctx, session, log)
			case "4":
				m.deleteProduct(ctx, session, log)
			case "5":
				m.recordPosting(ctx, session, log, domain.TransactionSale)
			case "6":
				m.recordPosting(ctx, session, log, domain.TransactionPurchase)
			case "7":
				m.report(ctx, session)
			case "8":
				m.listAccounts(ctx, session)
			case "9":
				log.Info("Logout")
				m.prompter.Printf("Logged out.\n")
				return nil
			default:
				m.prompter.Printf("Invalid choice. Kindly select a valid option.\n")
			}
			continue
		}

		m.prompter.Printf("\n1. Add Product\n2. List Products\n3. Update Product\n4. Logout\n")
		choice, err = m.prompter.ReadLine("Enter your choice: ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			m.addProduct(ctx, session, log)
		case "2":
			m.listProducts(ctx)
		case "3":
			m.updateProduct(ctx, session, log)
		case "4":
			log.Info("Logout")
			m.prompter.Printf("Logged out.\n")
			return nil
		default:
			m.prompter.Printf("Invalid choice. Kindly select a valid option.\n")
		}
	}
}

func (m *Menu) addProduct(ctx context.Context, session *service.Session, log *zap.Logger) {
	input := AddProductInput{}
	var err error
	if input.Name, err = m.prompter.ReadLine("Enter name: "); err != nil {
		return
	}
	if input.Description, err = m.prompter.ReadLine("Enter description: "); err != nil {
		return
	}
	if err := ValidateInput(input); err != nil {
		m.printValidationErrors(err)
		return
	}

	price, err := m.prompter.ReadFloat("Enter price: ")
	if err != nil {
		m.prompter.Printf("Invalid input: %v\n", err)
		return
	}
	stock, err := m.prompter.ReadInt("Enter stock: ")
	if err != nil {
		m.prompter.Printf("Invalid input: %v\n", err)
		return
	}
	alert, err := m.prompter.ReadOptionalInt("Enter low stock alert (blank for default 5): ")
	if err != nil {
		m.prompter.Printf("Invalid input: %v\n", err)
		return
	}

	product, err := m.catalog.Add(ctx, session.Role, input.Name, input.Description, price, stock, alert)
	if err != nil {
		m.operationFailed("add product", err)
		return
	}

	log.Info("Product added", zap.Int("product_id", product.ID))
	m.prompter.Printf("Added product #%d: %s\n", product.ID, product.Name)
}

func (m *Menu) listProducts(ctx context.Context) {
	products, err := m.catalog.List(ctx)
	if err != nil {
		m.operationFailed("list products", err)
		return
	}

	if len(products) == 0 {
		m.prompter.Printf("No products in the catalog.\n")
		return
	}

	for _, p := range products {
		flag := ""
		if p.LowStock() {
			flag = "  [LOW STOCK]"
		}
		m.prompter.Printf("#%d %s — %.2f, stock %d%s\n", p.ID, p.Name, p.Price, p.Stock, flag)
		if p.Description != "" {
			m.prompter.Printf("    %s\n", p.Description)
		}
	}
}

func (m *Menu) updateProduct(ctx context.Context, session *service.Session, log *zap.Logger) {
	id, err := m.prompter.ReadInt("Enter product ID to update: ")
	if err != nil {
		m.prompter.Printf("Invalid input: %v\n", err)
		return
	}

	m.prompter.Printf("Leave a field blank to keep its current value.\n")

	update := domain.ProductUpdate{}
	if update.Name, err = m.prompter.ReadOptionalString("New name: "); err != nil {
		return
	}
	if update.Description, err = m.prompter.ReadOptionalString("New description: "); err != nil {
		return
	}
	if update.Price, err = m.prompter.ReadOptionalFloat("New price: "); err != nil {
		m.prompter.Printf("Invalid input: %v\n", err)
		return
	}
	if update.Stock, err = m.prompter.ReadOptionalInt("New stock: "); err != nil {
		m.prompter.Printf("Invalid input: %v\n", err)
		return
	}
	if update.LowStockAlert, err = m.prompter.ReadOptionalInt("New low stock alert: "); err != nil {
		m.prompter.Printf("Invalid input: %v\n", err)
		return
	}

	product, err := m.catalog.Update(ctx, session.Role, id, update)
	if errors.Is(err, repository.ErrProductNotFound) {
		m.prompter.Printf("Product #%d not found.\n", id)
		return
	}
	if err != nil {
		m.operationFailed("update product", err)
		return
	}

	log.Info("Product updated", zap.Int("product_id", product.ID))
	m.prompter.Printf("Updated product #%d.\n", product.ID)
}

func (m *Menu) deleteProduct(ctx context.Context, session *service.Session, log *zap.Logger) {
	id, err := m.prompter.ReadInt("Enter product ID to delete: ")
	if err != nil {
		m.prompter.Printf("Invalid input: %v\n", err)
		return
	}

	err = m.catalog.Delete(ctx, session.Role, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		m.prompter.Printf("Product #%d not found.\n", id)
		return
	}
	if err != nil {
		m.operationFailed("delete product", err)
		return
	}

	log.Info("Product deleted", zap.Int("product_id", id))
	m.prompter.Printf("Deleted product #%d.\n", id)
}

func (m *Menu) recordPosting(ctx context.Context, session *service.Session, log *zap.Logger, txType domain.TransactionType) {
	input := PostInput{}
	var err error
	if input.ProductID, err = m.prompter.ReadInt("Enter product ID: "); err != nil {
		m.prompter.Printf("Invalid input: %v\n", err)
		return
	}
	if input.Quantity, err = m.prompter.ReadInt("Enter quantity: "); err != nil {
		m.prompter.Printf("Invalid input: %v\n", err)
		return
	}
	if err := ValidateInput(input); err != nil {
		m.printValidationErrors(err)
		return
	}

	entry, err := m.ledger.Post(ctx, session.Role, input.ProductID, txType, input.Quantity)
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		m.prompter.Printf("Product #%d not found.\n", input.ProductID)
	case errors.Is(err, repository.ErrInsufficientStock):
		m.prompter.Printf("Not enough stock for this sale.\n")
	case err != nil:
		m.operationFailed("record "+string(txType), err)
	default:
		log.Info("Transaction posted",
			zap.Int("transaction_id", entry.ID),
			zap.Int("product_id", entry.ProductID),
			zap.String("type", string(entry.Type)),
			zap.Int("quantity", entry.Quantity),
			zap.Float64("total_price", entry.TotalPrice),
		)
		m.prompter.Printf("Recorded %s #%d: %d units, total %.2f\n",
			entry.Type, entry.ID, entry.Quantity, entry.TotalPrice)
	}
}

func (m *Menu) report(ctx context.Context, session *service.Session) {
	summary, err := m.ledger.Summarize(ctx, session.Role)
	if err != nil {
		m.operationFailed("report", err)
		return
	}

	if len(summary) == 0 {
		m.prompter.Printf("No transactions recorded yet.\n")
		return
	}

	for _, txType := range []domain.TransactionType{domain.TransactionSale, domain.TransactionPurchase} {
		if s, ok := summary[txType]; ok {
			m.prompter.Printf("%-8s  total quantity %d, total amount %.2f\n", txType, s.TotalQuantity, s.TotalAmount)
		}
	}

	entries, err := m.ledger.History(ctx, session.Role, nil)
	if err != nil {
		m.operationFailed("report", err)
		return
	}
	for _, e := range entries {
		m.prompter.Printf("  #%d %s product %d: %d units, total %.2f (%s)\n",
			e.ID, e.Type, e.ProductID, e.Quantity, e.TotalPrice, e.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func (m *Menu) listAccounts(ctx context.Context, session *service.Session) {
	accounts, err := m.accounts.ListAccounts(ctx, session.Role)
	if err != nil {
		m.operationFailed("display users", err)
		return
	}

	for _, a := range accounts {
		m.prompter.Printf("%s (%s)\n", a.Username, a.Role)
	}
}

func (m *Menu) printValidationErrors(err error) {
	for _, v := range FormatValidationErrors(err) {
		m.prompter.Printf("%s: %s\n", v.Field, v.Message)
	}
}

// operationFailed reports an unexpected error without ending the session.
func (m *Menu) operationFailed(operation string, err error) {
	if errors.Is(err, service.ErrAccessDenied) {
		m.prompter.Printf("You do not have permission for this operation.\n")
		return
	}
	m.logger.Error("Operation failed", zap.String("operation", operation), zap.Error(err))
	m.prompter.Printf("Could not complete %s: %v\n", operation, err)
}
