package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ridwanfathin/invoice-review-service/internal/domain"
	"github.com/ridwanfathin/invoice-review-service/internal/review"
	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file.pdf]",
	Short: "Upload a PDF invoice",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpload,
}

var extractCmd = &cobra.Command{
	Use:   "extract [file-id]",
	Short: "Extract invoice fields from an uploaded PDF",
	Long:  `Runs AI extraction on an uploaded file. With --save the extracted document is stored as a new invoice.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices, newest first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var getCmd = &cobra.Command{
	Use:   "get [file-id]",
	Short: "Print one invoice as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [file-id]",
	Short: "Delete an invoice",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var editLineCmd = &cobra.Command{
	Use:   "edit-line [file-id] [index|new] [field] [value]",
	Short: "Edit one line item and save",
	Long: `Sets description, unitPrice or quantity of a line item. Price and quantity
edits recompute the line total. Use "new" as the index to append a line.`,
	Args: cobra.ExactArgs(4),
	RunE: runEditLine,
}

var removeLineCmd = &cobra.Command{
	Use:   "remove-line [file-id] [index]",
	Short: "Remove one line item and save",
	Args:  cobra.ExactArgs(2),
	RunE:  runRemoveLine,
}

var setCmd = &cobra.Command{
	Use:   "set [file-id] [vendor.field|invoice.field] [value]",
	Short: "Set a vendor or invoice field and save",
	Long: `Vendor fields: name, address, taxId.
Invoice fields: number, date, currency, subtotal, taxPercent, total, poNumber, poDate.
An empty value clears an optional field.`,
	Args: cobra.ExactArgs(3),
	RunE: runSet,
}

var convertCmd = &cobra.Command{
	Use:   "convert [file-id] [currency]",
	Short: "Convert every amount of an invoice to another currency and save",
	Args:  cobra.ExactArgs(2),
	RunE:  runConvert,
}

var (
	extractModel string
	extractSave  bool
	listQuery    string
	listPage     int
	listLimit    int
)

func init() {
	extractCmd.Flags().StringVarP(&extractModel, "model", "m", string(domain.ModelGemini), "Extraction model (gemini or groq)")
	extractCmd.Flags().BoolVar(&extractSave, "save", false, "Store the extracted document as a new invoice")

	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Search vendor name or invoice number")
	listCmd.Flags().IntVar(&listPage, "page", domain.DefaultPage, "Page number")
	listCmd.Flags().IntVar(&listLimit, "limit", domain.DefaultLimit, "Invoices per page")

	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(editLineCmd)
	rootCmd.AddCommand(removeLineCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(convertCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	resp, err := newClient().Upload(commandContext(cmd), args[0], data)
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}

	cmd.Printf("File ID:   %s\n", resp.FileID)
	cmd.Printf("File name: %s\n", resp.FileName)
	if resp.FileURL != "" {
		cmd.Printf("File URL:  %s\n", resp.FileURL)
	} else {
		cmd.Println("File URL:  (not persisted)")
	}
	return nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	selected, err := domain.ParseExtractionModel(extractModel)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	client := newClient()

	doc, err := client.Extract(ctx, args[0], selected)
	if err != nil {
		return fmt.Errorf("failed to extract data: %w", err)
	}

	if extractSave {
		saved, err := review.NewExtractedSession(client, doc).Save(ctx)
		if err != nil {
			return fmt.Errorf("failed to save invoice: %w", err)
		}
		doc = saved
	}

	return printJSON(cmd, doc)
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	list := review.NewInvoiceList(newClient(), listLimit)
	if err := list.Load(ctx, listQuery, listPage); err != nil {
		return fmt.Errorf("failed to list invoices: %w", err)
	}

	invoices := list.Invoices()
	if len(invoices) == 0 {
		cmd.Println("No invoices found")
		return nil
	}

	for i := range invoices {
		doc := &invoices[i]
		total := "-"
		if doc.Invoice.Total != nil {
			total = strconv.FormatFloat(*doc.Invoice.Total, 'f', 2, 64)
		}
		cmd.Printf("%s  %-24s  %-16s  %s  %s\n", doc.FileID, doc.Vendor.Name, doc.Invoice.Number, doc.Invoice.Date, total)
	}

	p := list.Pagination()
	cmd.Printf("\nPage %d of %d (%d invoices)\n", p.Page, p.TotalPages, p.Total)
	return nil
}

func runGet(cmd *cobra.Command, args []string) error {
	doc, err := newClient().GetInvoice(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("failed to get invoice: %w", err)
	}
	return printJSON(cmd, doc)
}

func runDelete(cmd *cobra.Command, args []string) error {
	session, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}
	if err := session.Delete(commandContext(cmd)); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	cmd.Printf("Deleted invoice %s\n", args[0])
	return nil
}

func runEditLine(cmd *cobra.Command, args []string) error {
	session, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}

	var index int
	if args[1] == "new" {
		index = session.AddLineItem()
	} else if index, err = strconv.Atoi(args[1]); err != nil {
		return fmt.Errorf("invalid line index %q", args[1])
	}

	if err := session.UpdateLineItem(index, args[2], args[3]); err != nil {
		return err
	}
	return saveAndPrint(cmd, session)
}

func runRemoveLine(cmd *cobra.Command, args []string) error {
	session, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}

	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid line index %q", args[1])
	}
	if err := session.RemoveLineItem(index); err != nil {
		return err
	}
	return saveAndPrint(cmd, session)
}

func runSet(cmd *cobra.Command, args []string) error {
	group, field, ok := strings.Cut(args[1], ".")
	if !ok {
		return fmt.Errorf("field must be vendor.<field> or invoice.<field>, got %q", args[1])
	}

	session, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}

	switch group {
	case "vendor":
		err = session.SetVendorField(field, args[2])
	case "invoice":
		err = session.SetInvoiceField(field, args[2])
	default:
		err = fmt.Errorf("%w: %s", review.ErrUnknownField, args[1])
	}
	if err != nil {
		return err
	}
	return saveAndPrint(cmd, session)
}

func runConvert(cmd *cobra.Command, args []string) error {
	session, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}
	if err := session.ConvertCurrency(commandContext(cmd), newClient(), args[1]); err != nil {
		return err
	}
	return saveAndPrint(cmd, session)
}

func openSession(cmd *cobra.Command, fileID string) (*review.Session, error) {
	client := newClient()
	doc, err := client.GetInvoice(commandContext(cmd), fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return review.OpenSession(client, doc), nil
}

func saveAndPrint(cmd *cobra.Command, session *review.Session) error {
	saved, err := session.Save(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to save invoice: %w", err)
	}
	return printJSON(cmd, saved)
}
