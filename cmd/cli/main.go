package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/IAN-www1/MOOBILE/internal/models"
	"github.com/IAN-www1/MOOBILE/internal/store"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	addCustomerCmd := flag.NewFlagSet("add-customer", flag.ExitOnError)
	username := addCustomerCmd.String("username", "", "Username for the new customer")
	email := addCustomerCmd.String("email", "", "Email for the new customer")
	password := addCustomerCmd.String("password", "", "Password for the new customer")

	addItemCmd := flag.NewFlagSet("add-item", flag.ExitOnError)
	itemName := addItemCmd.String("name", "", "Item name")
	itemDescription := addItemCmd.String("description", "", "Item description")
	itemCategory := addItemCmd.String("category", "", "Item category")
	itemPrice := addItemCmd.Float64("price", 0, "Base price")
	itemImage := addItemCmd.String("image", "", "Image URL")
	itemSizes := addItemCmd.String("sizes", "", "Size prices, e.g. 'Small=80,Medium=100,Large=120'")

	if len(os.Args) < 2 {
		fmt.Println("expected 'add-customer' or 'add-item' subcommand")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add-customer":
		addCustomerCmd.Parse(os.Args[2:])
		if *username == "" || *email == "" || *password == "" {
			fmt.Println("username, email and password are required")
			addCustomerCmd.PrintDefaults()
			os.Exit(1)
		}
		createCustomer(*username, *email, *password)
	case "add-item":
		addItemCmd.Parse(os.Args[2:])
		if *itemName == "" || *itemPrice <= 0 {
			fmt.Println("name and a positive price are required")
			addItemCmd.PrintDefaults()
			os.Exit(1)
		}
		createItem(*itemName, *itemDescription, *itemCategory, *itemImage, *itemPrice, *itemSizes)
	default:
		fmt.Println("expected 'add-customer' or 'add-item' subcommand")
		os.Exit(1)
	}
}

func openStore() *store.Store {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./moobile.db"
	}

	db, err := store.NewStore(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	// Ensure tables exist if running cli before server
	if err := db.InitSchema(); err != nil {
		log.Fatalf("Failed to init schema: %v", err)
	}
	return db
}

func createCustomer(username, email, password string) {
	db := openStore()
	defer db.Close()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	customer := &models.Customer{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
	}
	if err := db.CreateCustomer(customer); err != nil {
		log.Fatalf("Failed to create customer: %v", err)
	}

	fmt.Printf("Customer '%s' created successfully (id %d).\n", username, customer.ID)
}

func createItem(name, description, category, image string, price float64, sizes string) {
	db := openStore()
	defer db.Close()

	item := &models.Item{
		Name:        name,
		Description: description,
		Category:    category,
		Image:       image,
		Price:       price,
	}
	for _, pair := range strings.Split(sizes, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		size, priceStr, ok := strings.Cut(pair, "=")
		if !ok {
			log.Fatalf("Invalid size entry %q, expected 'Name=Price'", pair)
		}
		sizePrice, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			log.Fatalf("Invalid price for size %q: %v", size, err)
		}
		item.Sizes = append(item.Sizes, models.ItemSize{Size: size, Price: sizePrice})
	}

	if err := db.CreateItem(item); err != nil {
		log.Fatalf("Failed to create item: %v", err)
	}

	fmt.Printf("Item '%s' created successfully (id %d).\n", name, item.ID)
}
